// Command seed wipes the users and jobs collections and fills them with
// generated demo data. Every seeded account uses the password "password123".
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	mongodb "github.com/talenthub/talenthub-api/internal/infrastructure/db/mongo"
	"github.com/talenthub/talenthub-api/internal/pkg/config"
	"github.com/talenthub/talenthub-api/pkg/logger"
)

const (
	seedPassword = "password123"
	userCount    = 20
	jobCount     = 10
)

var (
	userSkills = []string{"JavaScript", "Python", "React", "Go", "MongoDB"}
	jobSkills  = []string{"JavaScript", "React", "Node.js", "Go", "Docker"}
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.ForEnv(cfg.Env, cfg.LogLevel))
	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "talenthub-seed"})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mongodb")
	}
	defer mongodb.Disconnect(client)

	for _, name := range []string{"users", "jobs"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("wipe collection")
		}
	}
	log.Info().Msg("existing users and jobs removed")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash seed password")
	}

	faker := gofakeit.New(uint64(time.Now().UnixNano()))
	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)

	var employers, freelancers []string
	for _, u := range fakeUsers(faker, userCount, string(hash)) {
		created, err := users.Create(ctx, u)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.Email).Msg("create user")
		}
		if created.Role == domain.RoleEmployer {
			employers = append(employers, created.ID)
		} else {
			freelancers = append(freelancers, created.ID)
		}
	}
	log.Info().Int("employers", len(employers)).Int("freelancers", len(freelancers)).Msg("users created")

	for _, j := range fakeJobs(faker, jobCount, employers, freelancers) {
		if _, err := jobs.Create(ctx, j); err != nil {
			log.Fatal().Err(err).Str("title", j.Title).Msg("create job")
		}
	}
	log.Info().Int("jobs", jobCount).Msg("jobs created")
}

// fakeUsers generates n accounts. The first two are forced to one employer and
// one freelancer so jobs always have an owner and applicants.
func fakeUsers(f *gofakeit.Faker, n int, passwordHash string) []*domain.User {
	now := time.Now().UTC()
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		role := f.RandomString([]string{domain.RoleFreelancer, domain.RoleEmployer})
		switch i {
		case 0:
			role = domain.RoleEmployer
		case 1:
			role = domain.RoleFreelancer
		}
		first, last := f.FirstName(), f.LastName()
		users = append(users, &domain.User{
			FullName:     first + " " + last,
			Email:        fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			PasswordHash: passwordHash,
			Role:         role,
			Bio:          f.LoremIpsumSentence(10),
			Skills:       pick(f, userSkills, 3),
			Rating:       float64(f.IntRange(0, 50)) / 10,
			CreatedAt:    now,
		})
	}
	return users
}

// fakeJobs generates n jobs owned by random employers, each with one to five
// distinct freelancer applicants.
func fakeJobs(f *gofakeit.Faker, n int, employers, freelancers []string) []*domain.Job {
	if len(employers) == 0 {
		return nil
	}
	now := time.Now().UTC()
	jobs := make([]*domain.Job, 0, n)
	for i := 0; i < n; i++ {
		applicants := pick(f, freelancers, f.IntRange(1, 5))
		jobs = append(jobs, &domain.Job{
			Title:       f.JobTitle(),
			Description: f.LoremIpsumParagraph(1, 4, 12, " "),
			Budget:      float64(f.IntRange(500, 10000)),
			EmployerID:  employers[f.IntRange(0, len(employers)-1)],
			Applicants:  applicants,
			Status:      domain.JobStatus(f.RandomString([]string{string(domain.JobOpen), string(domain.JobClosed)})),
			Time:        domain.JobTime(f.RandomString([]string{string(domain.FullTime), string(domain.PartTime)})),
			Remote:      f.Bool(),
			Location:    f.City(),
			Skills:      pick(f, jobSkills, 3),
			CreatedAt:   now.Add(-time.Duration(i) * time.Hour),
		})
	}
	return jobs
}

// pick returns up to n distinct elements of from in random order.
func pick(f *gofakeit.Faker, from []string, n int) []string {
	out := make([]string, len(from))
	copy(out, from)
	f.ShuffleStrings(out)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
