package postgres

import (
	"context"
	"fmt"

	"github.com/dtroode/pawconnect-server/internal/model"
)

var _ model.ListingStore = (*ListingRepository)(nil)

type ListingRepository struct {
	db DBTX
}

func NewListingRepository(db DBTX) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) CreateAdoptionPost(ctx context.Context, post model.AdoptionPost) (model.AdoptionPost, error) {
	const query = `INSERT INTO adoption_posts (owner_id, name, type, breed, gender, color, training,
			vaccine, physical_condition, behaviour, food, description, location, mobile, images, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, posted_on`

	images := post.Images
	if images == nil {
		images = []string{}
	}

	err := r.db.QueryRowContext(ctx, query,
		post.OwnerID, post.Name, post.Type, post.Breed, post.Gender, post.Color, post.Training,
		post.Vaccine, post.PhysicalCondition, post.Behaviour, post.Food, post.Description,
		post.Location, post.Mobile, images, post.Available,
	).Scan(&post.ID, &post.PostedOn)
	if err != nil {
		return model.AdoptionPost{}, fmt.Errorf("failed to create adoption post: %w", err)
	}
	return post, nil
}

func (r *ListingRepository) CreateMissingPost(ctx context.Context, post model.MissingPost) (model.MissingPost, error) {
	const query = `INSERT INTO missing_posts (creator_id, name, type, breed, gender, color, vaccine,
			specific_attribute, accessories_last_worn, location, reward, image, date_missing, still_missing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		post.CreatorID, post.Name, post.Type, post.Breed, post.Gender, post.Color, post.Vaccine,
		post.SpecificAttribute, post.AccessoriesLastWorn, post.Location, post.Reward, post.Image,
		post.DateMissing, post.StillMissing,
	).Scan(&post.ID)
	if err != nil {
		return model.MissingPost{}, fmt.Errorf("failed to create missing post: %w", err)
	}
	return post, nil
}

func (r *ListingRepository) CreateDonationPost(ctx context.Context, post model.DonationPost) (model.DonationPost, error) {
	const query = `INSERT INTO donation_posts (name, type, description, location, image,
			target_amount, remaining_amount, people_donated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_on`

	err := r.db.QueryRowContext(ctx, query,
		post.Name, post.Type, post.Description, post.Location, post.Image,
		post.TargetAmount, post.RemainingAmount, post.PeopleDonated,
	).Scan(&post.ID, &post.CreatedOn)
	if err != nil {
		return model.DonationPost{}, fmt.Errorf("failed to create donation post: %w", err)
	}
	return post, nil
}
