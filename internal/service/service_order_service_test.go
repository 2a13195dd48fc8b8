package service

import (
	"context"
	"testing"

	"github.com/spec-kit/service-order-api/internal/domain"
	"github.com/spec-kit/service-order-api/internal/events"
)

func newOrderFixture(t *testing.T) (*ServiceOrderService, *ProjectService, *domain.Project) {
	t.Helper()
	store := newMemStore()
	dispatcher := events.NewInMemoryDispatcher()
	projectSvc := NewProjectService(&stubProjectRepo{store: store}, dispatcher)
	orderSvc := NewServiceOrderService(&stubOrderRepo{store: store}, &stubProjectRepo{store: store}, dispatcher)

	project, err := projectSvc.Create(context.Background(), ProjectInput{Name: "Website Redesign"})
	if err != nil {
		t.Fatalf("project Create returned error: %v", err)
	}
	return orderSvc, projectSvc, project
}

func TestServiceOrderService_CreateEnrichedWithProjectName(t *testing.T) {
	orderSvc, _, project := newOrderFixture(t)

	order, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name:       "Homepage Design",
		Category:   "UI/UX",
		ProjectID:  project.ID,
		IsApproved: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.ProjectID != project.ID {
		t.Fatalf("expected project_id %d, got %d", project.ID, order.ProjectID)
	}
	if order.ProjectName != "Website Redesign" {
		t.Fatalf("expected enriched project_name, got %q", order.ProjectName)
	}
	if !order.IsApproved {
		t.Fatalf("expected is_approved to round-trip")
	}
}

func TestServiceOrderService_CreateMissingProject(t *testing.T) {
	orderSvc, _, _ := newOrderFixture(t)

	_, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name:      "Orphan",
		Category:  "Misc",
		ProjectID: 9999,
	})
	assertNotFound(t, err)

	orders, err := orderSvc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("failed create must insert nothing; have %d orders", len(orders))
	}
}

func TestServiceOrderService_ListFilteredByProject(t *testing.T) {
	orderSvc, projectSvc, project := newOrderFixture(t)

	other, err := projectSvc.Create(context.Background(), ProjectInput{Name: "Other"})
	if err != nil {
		t.Fatalf("project Create returned error: %v", err)
	}

	for _, in := range []ServiceOrderInput{
		{Name: "One", Category: "A", ProjectID: project.ID},
		{Name: "Two", Category: "B", ProjectID: other.ID},
	} {
		if _, err := orderSvc.Create(context.Background(), in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	orders, err := orderSvc.List(context.Background(), &project.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(orders) != 1 || orders[0].Name != "One" {
		t.Fatalf("expected only the matching order, got %+v", orders)
	}
}

func TestServiceOrderService_UpdateChecksOrderThenProject(t *testing.T) {
	orderSvc, _, project := newOrderFixture(t)

	order, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// missing order wins over missing project
	_, err = orderSvc.Update(context.Background(), 9999, ServiceOrderInput{
		Name: "x", Category: "y", ProjectID: 8888,
	})
	assertNotFound(t, err)

	// reassignment to a missing project is rejected
	_, err = orderSvc.Update(context.Background(), order.ID, ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: 8888,
	})
	assertNotFound(t, err)

	// the stored row is untouched after the rejected update
	unchanged, err := orderSvc.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if unchanged.ProjectID != project.ID {
		t.Fatalf("rejected update must not mutate; project_id became %d", unchanged.ProjectID)
	}
}

func TestServiceOrderService_UpdateReassignsProject(t *testing.T) {
	orderSvc, projectSvc, project := newOrderFixture(t)

	other, err := projectSvc.Create(context.Background(), ProjectInput{Name: "Other"})
	if err != nil {
		t.Fatalf("project Create returned error: %v", err)
	}

	order, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := orderSvc.Update(context.Background(), order.ID, ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: other.ID, IsApproved: true,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ProjectID != other.ID || updated.ProjectName != "Other" {
		t.Fatalf("expected reassigned project with fresh enrichment, got %+v", updated)
	}
}

func TestServiceOrderService_ToggleApprovalInvolution(t *testing.T) {
	orderSvc, _, project := newOrderFixture(t)

	order, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.IsApproved {
		t.Fatalf("expected is_approved to default to false")
	}

	once, err := orderSvc.ToggleApproval(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ToggleApproval returned error: %v", err)
	}
	if !once.IsApproved {
		t.Fatalf("expected first toggle to approve")
	}

	twice, err := orderSvc.ToggleApproval(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ToggleApproval returned error: %v", err)
	}
	if twice.IsApproved != order.IsApproved {
		t.Fatalf("double toggle must restore the original value")
	}
}

func TestServiceOrderService_ToggleApprovalNotFound(t *testing.T) {
	orderSvc, _, _ := newOrderFixture(t)

	_, err := orderSvc.ToggleApproval(context.Background(), 404)
	assertNotFound(t, err)
}

func TestServiceOrderService_DeleteNotFound(t *testing.T) {
	orderSvc, _, _ := newOrderFixture(t)
	assertNotFound(t, orderSvc.Delete(context.Background(), 404))
}

func TestServiceOrderService_CascadeOnProjectDelete(t *testing.T) {
	orderSvc, projectSvc, project := newOrderFixture(t)

	order, err := orderSvc.Create(context.Background(), ServiceOrderInput{
		Name: "Task", Category: "Dev", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := projectSvc.Delete(context.Background(), project.ID); err != nil {
		t.Fatalf("project Delete returned error: %v", err)
	}

	_, err = orderSvc.Get(context.Background(), order.ID)
	assertNotFound(t, err)
}
