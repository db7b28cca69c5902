package dashboard

// Stats are the admin-panel counts, recomputed from the store on every call.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalPets    int `json:"totalPets"`
	TotalOrders  int `json:"totalOrders"`
	TotalReviews int `json:"totalReviews"`
}
