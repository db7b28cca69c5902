package review

// Review is a user's rating of a dog. Duplicates per (user, dog) are
// allowed, matching the store contract.
type Review struct {
	ID     int    `json:"reviewId"`
	Text   string `json:"reviewText"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
	UserID int    `json:"userId"`
	DogID  int    `json:"dogId"`
}
