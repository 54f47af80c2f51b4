package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

const leadsCollection = "leads"

// LeadRepository implements ports.LeadRepository on MongoDB.
type LeadRepository struct {
	coll *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{coll: db.Collection(leadsCollection)}
}

// EnsureIndexes creates the indexes backing isolation and filter queries.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *LeadRepository) Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *lead
	doc.ID = ""
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}

	created := *lead
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrLeadNotFound
	}

	var lead domain.Lead
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	lead.ID = id
	return &lead, nil
}

// List composes the filter predicate: all supplied criteria are ANDed, the
// free-text search matches name/email/destination case-insensitively, and
// a non-empty ActorID restricts results to leads assigned to or created by
// that actor. Results come back in insertion order.
func (r *LeadRepository) List(ctx context.Context, filter ports.ListLeadsFilter) ([]*domain.Lead, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := buildLeadQuery(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer cur.Close(ctx)

	var leads []*domain.Lead
	for cur.Next(ctx) {
		var lead domain.Lead
		if err := cur.Decode(&lead); err != nil {
			return nil, 0, fmt.Errorf("decode lead: %w", err)
		}
		leads = append(leads, &lead)
	}
	return leads, total, cur.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLeadNotFound
	}

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func buildLeadQuery(filter ports.ListLeadsFilter) bson.M {
	query := bson.M{}

	if filter.ActorID != "" {
		query["$or"] = bson.A{
			bson.M{"assigned_to": filter.ActorID},
			bson.M{"created_by": filter.ActorID},
		}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: regexEscape(filter.Search), Options: "i"}
		// The isolation $or must survive alongside the search $or, so the
		// search clause goes into $and when both are present.
		search := bson.A{
			bson.M{"name": regex},
			bson.M{"email": regex},
			bson.M{"destination": regex},
		}
		if _, hasIsolation := query["$or"]; hasIsolation {
			query["$and"] = bson.A{bson.M{"$or": search}}
		} else {
			query["$or"] = search
		}
	}

	return query
}

// regexEscape quotes regex metacharacters so user input is matched literally.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		for j := 0; j < len(meta); j++ {
			if s[i] == meta[j] {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
