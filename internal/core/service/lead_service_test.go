package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagedesk/crm-system/internal/core/domain"
	"github.com/voyagedesk/crm-system/internal/core/ports"
)

// stubLeadRepo is an in-memory LeadRepository recording the last filter it
// was asked to apply.
type stubLeadRepo struct {
	leads      []*domain.Lead
	nextID     int
	lastFilter ports.ListLeadsFilter
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{nextID: 1}
}

func (r *stubLeadRepo) Insert(_ context.Context, lead *domain.Lead) (*domain.Lead, error) {
	clone := *lead
	clone.ID = fmt.Sprintf("L%d", r.nextID)
	r.nextID++
	r.leads = append(r.leads, &clone)
	out := clone
	return &out, nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	for _, l := range r.leads {
		if l.ID == id {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) List(_ context.Context, filter ports.ListLeadsFilter) ([]*domain.Lead, int64, error) {
	r.lastFilter = filter
	var matched []*domain.Lead
	for _, l := range r.leads {
		if filter.ActorID != "" && l.AssignedTo != filter.ActorID && l.CreatedBy != filter.ActorID {
			continue
		}
		if filter.Status != "" && string(l.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(l.Priority) != filter.Priority {
			continue
		}
		clone := *l
		matched = append(matched, &clone)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *stubLeadRepo) UpdateStatus(_ context.Context, id string, status domain.LeadStatus) error {
	for _, l := range r.leads {
		if l.ID == id {
			l.Status = status
			l.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

func newLeadService(repo *stubLeadRepo) *LeadService {
	return NewLeadService(repo, zerolog.Nop())
}

func seedLead(repo *stubLeadRepo, name, assignedTo, createdBy string) *domain.Lead {
	l, _ := repo.Insert(context.Background(), &domain.Lead{
		Name:       name,
		Status:     domain.LeadStatusNew,
		Priority:   domain.PriorityMedium,
		AssignedTo: assignedTo,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	})
	return l
}

var (
	callerActor = ports.Actor{ID: "3", Role: domain.RoleCaller}
	adminActor  = ports.Actor{ID: "2", Role: domain.RoleAdmin}
	superActor  = ports.Actor{ID: "1", Role: domain.RoleSuper}
)

func TestLeadService_List_CallerIsolation(t *testing.T) {
	repo := newStubLeadRepo()
	mine := seedLead(repo, "Family trip to Rome", "3", "2")
	alsoMine := seedLead(repo, "Honeymoon in Kyoto", "9", "3")
	seedLead(repo, "Cruise for the Smiths", "9", "2")
	svc := newLeadService(repo)

	res, err := svc.List(context.Background(), callerActor, ports.ListLeadsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.ActorID != "3" {
		t.Fatalf("caller query ran without isolation scope, filter = %+v", repo.lastFilter)
	}
	if res.Total != 2 || len(res.Items) != 2 {
		t.Fatalf("caller sees %d leads (total %d), want 2", len(res.Items), res.Total)
	}
	got := map[string]bool{res.Items[0].ID: true, res.Items[1].ID: true}
	if !got[mine.ID] || !got[alsoMine.ID] {
		t.Fatalf("caller sees wrong leads: %v", got)
	}
}

func TestLeadService_List_ElevatedSeesAll(t *testing.T) {
	repo := newStubLeadRepo()
	seedLead(repo, "Family trip to Rome", "3", "2")
	seedLead(repo, "Cruise for the Smiths", "9", "2")
	svc := newLeadService(repo)

	for _, actor := range []ports.Actor{adminActor, superActor} {
		res, err := svc.List(context.Background(), actor, ports.ListLeadsInput{})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if repo.lastFilter.ActorID != "" {
			t.Fatalf("%s query should not carry isolation scope", actor.Role)
		}
		if res.Total != 2 {
			t.Fatalf("%s sees total %d, want 2", actor.Role, res.Total)
		}
	}
}

func TestLeadService_List_Pagination(t *testing.T) {
	repo := newStubLeadRepo()
	for i := 0; i < 60; i++ {
		seedLead(repo, fmt.Sprintf("Lead %d", i), "9", "2")
	}
	svc := newLeadService(repo)

	cases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 50, 0},
		{"negative values fall back", -5, -3, 50, 0},
		{"explicit limit kept", 10, 5, 10, 5},
		{"limit capped", 1000, 0, 200, 0},
	}
	for _, tc := range cases {
		res, err := svc.List(context.Background(), adminActor, ports.ListLeadsInput{Limit: tc.limit, Offset: tc.offset})
		if err != nil {
			t.Fatalf("%s: list failed: %v", tc.name, err)
		}
		if res.Limit != tc.wantLimit || res.Offset != tc.wantOffset {
			t.Errorf("%s: got limit=%d offset=%d, want limit=%d offset=%d",
				tc.name, res.Limit, res.Offset, tc.wantLimit, tc.wantOffset)
		}
		if repo.lastFilter.Limit != tc.wantLimit || repo.lastFilter.Offset != tc.wantOffset {
			t.Errorf("%s: repository filter = %+v", tc.name, repo.lastFilter)
		}
	}

	// Total is pre-pagination.
	res, _ := svc.List(context.Background(), adminActor, ports.ListLeadsInput{Limit: 10})
	if res.Total != 60 || len(res.Items) != 10 {
		t.Fatalf("got %d items of total %d, want 10 of 60", len(res.Items), res.Total)
	}
}

func TestLeadService_List_FiltersAreANDed(t *testing.T) {
	repo := newStubLeadRepo()
	l, _ := repo.Insert(context.Background(), &domain.Lead{
		Name: "Safari", Status: domain.LeadStatusQuoted, Priority: domain.PriorityHigh, AssignedTo: "3", CreatedBy: "2",
	})
	repo.Insert(context.Background(), &domain.Lead{
		Name: "Safari but colder", Status: domain.LeadStatusQuoted, Priority: domain.PriorityLow, AssignedTo: "3", CreatedBy: "2",
	})
	svc := newLeadService(repo)

	res, err := svc.List(context.Background(), adminActor, ports.ListLeadsInput{
		Status:   string(domain.LeadStatusQuoted),
		Priority: string(domain.PriorityHigh),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 1 || res.Items[0].ID != l.ID {
		t.Fatalf("combined filters returned %d leads, want exactly the quoted high-priority one", res.Total)
	}
}

func TestLeadService_Get_IsolationBoundary(t *testing.T) {
	repo := newStubLeadRepo()
	mine := seedLead(repo, "Family trip to Rome", "3", "2")
	foreign := seedLead(repo, "Cruise for the Smiths", "9", "2")
	svc := newLeadService(repo)

	if _, err := svc.Get(context.Background(), callerActor, mine.ID); err != nil {
		t.Fatalf("caller cannot read own lead: %v", err)
	}
	if _, err := svc.Get(context.Background(), callerActor, foreign.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on foreign lead, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor, foreign.ID); err != nil {
		t.Fatalf("admin should read any lead: %v", err)
	}
	if _, err := svc.Get(context.Background(), superActor, "L999"); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadService_Create_CallerCannotAssignAway(t *testing.T) {
	repo := newStubLeadRepo()
	svc := newLeadService(repo)

	l, err := svc.Create(context.Background(), callerActor, ports.CreateLeadInput{
		Name:       "Family trip to Rome",
		AssignedTo: "9",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if l.AssignedTo != callerActor.ID {
		t.Fatalf("caller lead assigned to %q, want %q", l.AssignedTo, callerActor.ID)
	}
	if l.CreatedBy != callerActor.ID {
		t.Fatalf("created_by = %q, want %q", l.CreatedBy, callerActor.ID)
	}
	if l.Status != domain.LeadStatusNew {
		t.Fatalf("new lead status = %s, want new", l.Status)
	}
	if l.Priority != domain.PriorityMedium {
		t.Fatalf("default priority = %s, want medium", l.Priority)
	}

	// Admins may assign to anyone.
	l2, err := svc.Create(context.Background(), adminActor, ports.CreateLeadInput{
		Name:       "Cruise for the Smiths",
		AssignedTo: "3",
		Priority:   string(domain.PriorityHigh),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if l2.AssignedTo != "3" || l2.Priority != domain.PriorityHigh {
		t.Fatalf("admin lead = %+v", l2)
	}
}

func TestLeadService_UpdateStatus(t *testing.T) {
	repo := newStubLeadRepo()
	mine := seedLead(repo, "Family trip to Rome", "3", "2")
	foreign := seedLead(repo, "Cruise for the Smiths", "9", "2")
	svc := newLeadService(repo)

	l, err := svc.UpdateStatus(context.Background(), callerActor, mine.ID, "contacted")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if l.Status != domain.LeadStatusContacted {
		t.Fatalf("status = %s, want contacted", l.Status)
	}
	stored, _ := repo.FindByID(context.Background(), mine.ID)
	if stored.Status != domain.LeadStatusContacted {
		t.Fatal("status not persisted")
	}

	if _, err := svc.UpdateStatus(context.Background(), callerActor, foreign.ID, "won"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), adminActor, mine.ID, "galactic"); !errors.Is(err, domain.ErrInvalidLeadStatus) {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
}
