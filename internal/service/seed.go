package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

type seedUser struct {
	name, username, email, password, location, bio string
	role                                            model.RoleKind
}

// DefaultAdminPassword is the seeded administrator's password unless one is
// configured.
const DefaultAdminPassword = "admin123"

var seedUsers = []seedUser{
	{"Admin User", "admin", "admin@pawconnect.com", DefaultAdminPassword, "Warsaw, Poland", "Administrator of PawConnect platform", model.RoleAdmin},
	{"John Doe", "johndoe", "john@pawconnect.com", "user123", "Krakow, Poland", "Animal lover and volunteer", model.RoleUser},
	{"Jane Smith", "janesmith", "jane@pawconnect.com", "user123", "Gdansk, Poland", "Pet rescuer and foster parent", model.RoleUser},
}

// Seeder populates an empty database with demonstration data.
type Seeder struct {
	txm           model.TxManager
	hasher        model.PasswordHasher
	logger        *logger.Logger
	now           func() time.Time
	adminPassword string
}

func NewSeeder(txm model.TxManager, hasher model.PasswordHasher, logger *logger.Logger) *Seeder {
	return &Seeder{txm: txm, hasher: hasher, logger: logger, now: time.Now, adminPassword: DefaultAdminPassword}
}

// WithAdminPassword sets the administrator's password. An empty value keeps
// the default.
func (s *Seeder) WithAdminPassword(password string) *Seeder {
	if password != "" {
		s.adminPassword = password
	}
	return s
}

// Seed runs in one transaction and does nothing if any user exists. It
// reports whether data was written. On error nothing is written.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	seeded := false

	err := s.txm.WithinTx(ctx, func(ctx context.Context, st model.Stores) error {
		n, err := st.Users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		for _, kind := range []model.RoleKind{model.RoleAdmin, model.RoleUser} {
			if _, err := st.Roles.GetOrCreate(ctx, kind); err != nil {
				return fmt.Errorf("create role %s: %w", kind, err)
			}
		}

		owners := make([]int64, 0, len(seedUsers))
		for _, su := range seedUsers {
			u, err := s.createUser(ctx, st, su)
			if err != nil {
				return err
			}
			owners = append(owners, u.ID)
		}

		if err := s.createPosts(ctx, st.Listings, owners); err != nil {
			return err
		}

		seeded = true
		return nil
	})
	if err != nil {
		s.logger.Error("Seeder: seeding failed, nothing written", "error", err.Error())
		return false, fmt.Errorf("seed database: %w", err)
	}

	if seeded {
		s.logger.Info("Seeder: database seeded", "users", len(seedUsers))
		if s.adminPassword == DefaultAdminPassword {
			s.logger.Warn("Seeder: administrator uses the default password, set SEED_ADMIN_PASSWORD",
				"email", seedUsers[0].email)
		}
	} else {
		s.logger.Info("Seeder: database already contains data, skipping")
	}
	return seeded, nil
}

func (s *Seeder) createUser(ctx context.Context, st model.Stores, su seedUser) (model.User, error) {
	role, err := st.Roles.GetByName(ctx, su.role)
	if err != nil {
		return model.User{}, fmt.Errorf("load role %s: %w", su.role, err)
	}

	password := su.password
	if su.role == model.RoleAdmin {
		password = s.adminPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, err
	}

	u, err := st.Users.Create(ctx, model.User{
		Name:            su.name,
		Username:        su.username,
		Email:           normalizeEmail(su.email),
		PasswordHash:    hash,
		Location:        su.location,
		Bio:             su.bio,
		AccountVerified: true,
		Roles:           []model.Role{role},
	})
	if err != nil {
		return model.User{}, fmt.Errorf("create user %s: %w", su.email, err)
	}
	return u, nil
}

// createPosts expects owners as admin, john, jane.
func (s *Seeder) createPosts(ctx context.Context, listings model.ListingStore, owners []int64) error {
	admin, john, jane := owners[0], owners[1], owners[2]
	today := s.now()

	adoptions := []model.AdoptionPost{
		{OwnerID: admin, Name: "Luna", Type: "Dog", Breed: "Golden Retriever", Gender: "Female", Color: "Golden",
			Training: "Basic commands", Vaccine: "Fully vaccinated", PhysicalCondition: "Healthy", Behaviour: "Friendly, playful",
			Food: "Dry dog food", Location: "Warsaw, Poland", Mobile: "+48 123 456 789",
			Description: "Luna is a friendly and energetic 2-year-old Golden Retriever. She loves playing fetch and going for walks. Great with kids and other dogs.",
			Images:      []string{"https://images.unsplash.com/photo-1552053831-71594a27632d?w=400"}},
		{OwnerID: john, Name: "Whiskers", Type: "Cat", Breed: "Persian", Gender: "Male", Color: "White",
			Training: "Litter trained", Vaccine: "Up to date", PhysicalCondition: "Healthy", Behaviour: "Calm, affectionate",
			Food: "Premium cat food", Location: "Krakow, Poland", Mobile: "+48 987 654 321",
			Description: "Whiskers is a calm and gentle 3-year-old Persian cat. Perfect for a quiet home. Loves cuddling and napping.",
			Images:      []string{"https://images.unsplash.com/photo-1574158622682-e40e69881006?w=400"}},
		{OwnerID: jane, Name: "Max", Type: "Dog", Breed: "German Shepherd", Gender: "Male", Color: "Black and Tan",
			Training: "Advanced training", Vaccine: "Fully vaccinated", PhysicalCondition: "Healthy", Behaviour: "Loyal, protective",
			Food: "High-quality dog food", Location: "Gdansk, Poland", Mobile: "+48 555 123 456",
			Description: "Max is a loyal and intelligent 4-year-old German Shepherd. Excellent guard dog, great with families. Needs active lifestyle.",
			Images:      []string{"https://images.unsplash.com/photo-1583337130417-3346a1be7dee?w=400"}},
		{OwnerID: admin, Name: "Bella", Type: "Cat", Breed: "Siamese", Gender: "Female", Color: "Cream and Brown",
			Training: "Litter trained", Vaccine: "Up to date", PhysicalCondition: "Healthy", Behaviour: "Social, playful",
			Food: "Wet and dry cat food", Location: "Wroclaw, Poland", Mobile: "+48 444 789 012",
			Description: "Bella is a vocal and social 1-year-old Siamese cat. Loves attention and playing with toys. Perfect for active families.",
			Images:      []string{"https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?w=400"}},
		{OwnerID: john, Name: "Rocky", Type: "Dog", Breed: "Mixed Breed", Gender: "Male", Color: "Brown",
			Training: "Basic commands", Vaccine: "Fully vaccinated", PhysicalCondition: "Healthy", Behaviour: "Gentle, friendly",
			Food: "Standard dog food", Location: "Poznan, Poland", Mobile: "+48 333 456 789",
			Description: "Rocky is a sweet and gentle 5-year-old mixed breed dog. Rescued from the streets, now looking for a loving home.",
			Images:      []string{"https://images.unsplash.com/photo-1534361960057-19889c938271?w=400"}},
	}
	for _, p := range adoptions {
		p.Available = true
		if _, err := listings.CreateAdoptionPost(ctx, p); err != nil {
			return fmt.Errorf("create adoption post %s: %w", p.Name, err)
		}
	}

	days := func(n int) time.Time { return today.AddDate(0, 0, -n) }
	missing := []model.MissingPost{
		{CreatorID: admin, Name: "Charlie", Type: "Dog", Breed: "Labrador", Gender: "Male", Color: "Yellow", Vaccine: "Fully vaccinated",
			SpecificAttribute: "Wearing blue collar with name tag", AccessoriesLastWorn: "Blue collar, red leash",
			Location: "Warsaw, Poland - City Center", Reward: "500 PLN reward", DateMissing: days(2),
			Image: "https://images.unsplash.com/photo-1548199973-03cce0bbc87b?w=400"},
		{CreatorID: john, Name: "Mittens", Type: "Cat", Breed: "British Shorthair", Gender: "Female", Color: "Gray", Vaccine: "Up to date",
			SpecificAttribute: "White paws, green eyes", AccessoriesLastWorn: "Red collar with bell",
			Location: "Krakow, Poland - Old Town", Reward: "300 PLN reward", DateMissing: days(5),
			Image: "https://images.unsplash.com/photo-1513245543132-31f507417b26?w=400"},
		{CreatorID: jane, Name: "Buddy", Type: "Dog", Breed: "Beagle", Gender: "Male", Color: "Tri-color", Vaccine: "Fully vaccinated",
			SpecificAttribute: "Very friendly, responds to name", AccessoriesLastWorn: "Green harness",
			Location: "Gdansk, Poland - Beach area", Reward: "400 PLN reward", DateMissing: days(1),
			Image: "https://images.unsplash.com/photo-1505628346881-b72b27e84530?w=400"},
		{CreatorID: admin, Name: "Shadow", Type: "Cat", Breed: "Black Cat", Gender: "Male", Color: "Black", Vaccine: "Up to date",
			SpecificAttribute: "All black, yellow eyes", AccessoriesLastWorn: "No collar",
			Location: "Wroclaw, Poland - Residential area", Reward: "200 PLN reward", DateMissing: days(2),
			Image: "https://images.unsplash.com/photo-1574158622682-e40e69881006?w=400"},
	}
	for _, p := range missing {
		p.StillMissing = true
		if _, err := listings.CreateMissingPost(ctx, p); err != nil {
			return fmt.Errorf("create missing post %s: %w", p.Name, err)
		}
	}

	donations := []model.DonationPost{
		{Name: "Emergency Medical Fund for Injured Stray Dogs", Type: "Medical", Location: "Warsaw, Poland",
			Description:  "We need urgent funds to treat 5 stray dogs found injured on the streets. They require surgery and medical care.",
			TargetAmount: 50000, RemainingAmount: 35000, PeopleDonated: 15,
			Image: "https://images.unsplash.com/photo-1601758228041-f3b2795255f1?w=400"},
		{Name: "Shelter Food and Supplies Drive", Type: "Food & Supplies", Location: "Krakow, Poland",
			Description:  "Help us provide food, blankets, and medical supplies for our shelter animals. Every donation helps!",
			TargetAmount: 30000, RemainingAmount: 18000, PeopleDonated: 42,
			Image: "https://images.unsplash.com/photo-1583336663277-620dc1996580?w=400"},
		{Name: "Rescue Operation for Abandoned Kittens", Type: "Rescue", Location: "Gdansk, Poland",
			Description:  "We found 8 abandoned kittens that need immediate care, vaccinations, and finding forever homes.",
			TargetAmount: 25000, RemainingAmount: 12000, PeopleDonated: 28,
			Image: "https://images.unsplash.com/photo-1513245543132-31f507417b26?w=400"},
	}
	for _, p := range donations {
		if _, err := listings.CreateDonationPost(ctx, p); err != nil {
			return fmt.Errorf("create donation post %s: %w", p.Name, err)
		}
	}

	return nil
}
