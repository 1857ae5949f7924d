package dto

type POIRecordResponse struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	FriendlyCategory string  `json:"friendly_category"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	AvgDwellMins     int     `json:"avg_dwell_minutes"`
	Rating           float64 `json:"rating"`
}

type ListPOIsResponse struct {
	POIs []POIRecordResponse `json:"pois"`
}
