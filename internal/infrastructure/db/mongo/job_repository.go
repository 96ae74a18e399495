package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type jobDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Budget      float64              `bson:"budget"`
	Employer    primitive.ObjectID   `bson:"employer"`
	Applicants  []primitive.ObjectID `bson:"applicants"`
	Status      string               `bson:"status"`
	Time        string               `bson:"time"`
	Remote      bool                 `bson:"remote"`
	Location    string               `bson:"location,omitempty"`
	Skills      []string             `bson:"skills"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func (d *jobDoc) toDomain() *domain.Job {
	skills := d.Skills
	if skills == nil {
		skills = []string{}
	}
	return &domain.Job{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Budget:      d.Budget,
		EmployerID:  d.Employer.Hex(),
		Applicants:  hexIDs(d.Applicants),
		Status:      domain.JobStatus(d.Status),
		Time:        domain.JobTime(d.Time),
		Remote:      d.Remote,
		Location:    d.Location,
		Skills:      skills,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	employer, ok := objectID(job.EmployerID)
	if !ok {
		return nil, fmt.Errorf("%w: malformed employer id", domain.ErrInvalidJob)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := jobDoc{
		Title:       job.Title,
		Description: job.Description,
		Budget:      job.Budget,
		Employer:    employer,
		Applicants:  objectIDs(job.Applicants),
		Status:      string(job.Status),
		Time:        string(job.Time),
		Remote:      job.Remote,
		Location:    job.Location,
		Skills:      job.Skills,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.CreatedAt,
	}
	if doc.Skills == nil {
		doc.Skills = []string{}
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert job: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns matching jobs, newest first.
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	return r.find(ctx, jobFilter(filter))
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID string) ([]*domain.Job, error) {
	oid, ok := objectID(employerID)
	if !ok {
		return []*domain.Job{}, nil
	}
	return r.find(ctx, bson.M{"employer": oid})
}

// Update overwrites the editable fields. The filter includes the employer so a
// job never changes hands.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	oid, ok := objectID(job.ID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	employer, ok := objectID(job.EmployerID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"title":       job.Title,
		"description": job.Description,
		"budget":      job.Budget,
		"status":      string(job.Status),
		"time":        string(job.Time),
		"remote":      job.Remote,
		"location":    job.Location,
		"skills":      job.Skills,
		"updatedAt":   time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc jobDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid, "employer": employer}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("update job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// AddApplicant pushes userID in one conditional write that only matches an
// open job not yet listing userID.
func (r *JobRepository) AddApplicant(ctx context.Context, jobID, userID string) (*domain.Job, bool, error) {
	oid, ok := objectID(jobID)
	if !ok {
		return nil, false, nil
	}
	applicant, ok := objectID(userID)
	if !ok {
		return nil, false, fmt.Errorf("add applicant: malformed user id %q", userID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":        oid,
		"status":     string(domain.JobOpen),
		"applicants": bson.M{"$ne": applicant},
	}
	update := bson.M{
		"$push": bson.M{"applicants": applicant},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc jobDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("add applicant: %w", err)
	}
	return doc.toDomain(), true, nil
}

// EnsureIndexes creates the indexes backing employer and listing queries.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employer", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *JobRepository) find(ctx context.Context, filter bson.M) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, len(docs))
	for i := range docs {
		jobs[i] = docs[i].toDomain()
	}
	return jobs, nil
}

// jobFilter translates a listing filter into a query document. Zero-valued
// criteria are omitted.
func jobFilter(f domain.JobFilter) bson.M {
	q := bson.M{}
	if f.RemoteOnly {
		q["remote"] = true
	}
	if f.Time != "" {
		q["time"] = string(f.Time)
	}
	if f.MinBudget > 0 {
		q["budget"] = bson.M{"$gte": f.MinBudget}
	}
	if f.Location != "" {
		q["location"] = f.Location
	}
	if f.Status != "" {
		q["status"] = string(f.Status)
	}
	if f.Skill != "" {
		q["skills"] = bson.M{"$elemMatch": bson.M{
			"$regex":   regexp.QuoteMeta(f.Skill),
			"$options": "i",
		}}
	}
	return q
}
