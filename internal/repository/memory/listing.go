package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.ListingStore = (*ListingRepository)(nil)

type ListingRepository struct {
	view view
}

func NewListingRepository(s *Store) *ListingRepository {
	return &ListingRepository{view: view{store: s}}
}

func (r *ListingRepository) CreateAdoptionPost(_ context.Context, post model.AdoptionPost) (model.AdoptionPost, error) {
	_ = r.view.do(func(st *state) error {
		st.nextPostID++
		post.ID = st.nextPostID
		post.PostedOn = time.Now()
		post.Images = slices.Clone(post.Images)
		st.adoptions = append(st.adoptions, post)
		return nil
	})
	return post, nil
}

func (r *ListingRepository) CreateMissingPost(_ context.Context, post model.MissingPost) (model.MissingPost, error) {
	_ = r.view.do(func(st *state) error {
		st.nextPostID++
		post.ID = st.nextPostID
		st.missing = append(st.missing, post)
		return nil
	})
	return post, nil
}

func (r *ListingRepository) CreateDonationPost(_ context.Context, post model.DonationPost) (model.DonationPost, error) {
	_ = r.view.do(func(st *state) error {
		st.nextPostID++
		post.ID = st.nextPostID
		post.CreatedOn = time.Now()
		st.donations = append(st.donations, post)
		return nil
	})
	return post, nil
}

// Counts reports how many posts of each kind are stored.
func (r *ListingRepository) Counts() (adoption, missing, donation int) {
	_ = r.view.do(func(st *state) error {
		adoption, missing, donation = len(st.adoptions), len(st.missing), len(st.donations)
		return nil
	})
	return adoption, missing, donation
}
