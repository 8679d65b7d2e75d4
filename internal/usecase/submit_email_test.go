package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cloudguides/leadcapture/internal/entity"
	"github.com/cloudguides/leadcapture/internal/infra/integration/mailerlite"
)

// MockSubmissionStore
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Record(ctx context.Context, email, firstName, route string) (*entity.Contact, *entity.Lead, bool, error) {
	args := m.Called(ctx, email, firstName, route)
	if args.Get(0) == nil {
		return nil, nil, false, args.Error(3)
	}
	return args.Get(0).(*entity.Contact), args.Get(1).(*entity.Lead), args.Bool(2), args.Error(3)
}

// MockSubscriberGateway
type MockSubscriberGateway struct {
	mock.Mock
}

func (m *MockSubscriberGateway) CreateSubscriber(ctx context.Context, input mailerlite.CreateSubscriberInput) (*mailerlite.Subscriber, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailerlite.Subscriber), args.Error(1)
}

func (m *MockSubscriberGateway) GetSubscriberByEmail(ctx context.Context, email string) (*mailerlite.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mailerlite.Subscriber), args.Error(1)
}

func storedContact(email, name string) (*entity.Contact, *entity.Lead) {
	now := time.Now()
	contact := &entity.Contact{
		ID:        "c-123",
		FirstName: name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lead := &entity.Lead{
		ID:        "l-456",
		Route:     "giveaway.k8s",
		CreatedAt: now,
		UpdatedAt: now,
	}
	return contact, lead
}

func TestSubmitEmailSuccessWithMappedGroup(t *testing.T) {
	store := new(MockSubmissionStore)
	gateway := new(MockSubscriberGateway)

	contact, lead := storedContact("a@example.com", "Ann")
	store.On("Record", mock.Anything, "a@example.com", "Ann", "giveaway.k8s").
		Return(contact, lead, true, nil)
	gateway.On("CreateSubscriber", mock.Anything, mock.MatchedBy(func(input mailerlite.CreateSubscriberInput) bool {
		return input.Email == "a@example.com" &&
			input.Subscribed &&
			len(input.Groups) == 1 && input.Groups[0] == "123456789" &&
			input.Fields["name"] == "Ann"
	})).Return(&mailerlite.Subscriber{ID: "sub-1", Email: "a@example.com", Status: "active"}, nil)

	uc := NewSubmitEmailUseCase(store, gateway, map[string]string{"giveaway.k8s": "123456789"})

	output, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "Ann",
		Email:     "a@example.com",
		LeadRoute: "giveaway.k8s",
	})

	assert.NoError(t, err)
	assert.Equal(t, "c-123", output.ContactID)
	assert.Equal(t, "giveaway.k8s", output.LeadRoute)
	assert.Equal(t, "sub-1", output.SubscriberID)
	assert.True(t, output.NewContact)
	store.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestSubmitEmailUnmappedRouteSyncsWithoutGroup(t *testing.T) {
	store := new(MockSubmissionStore)
	gateway := new(MockSubscriberGateway)

	contact, lead := storedContact("a@example.com", "Ann")
	store.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(contact, lead, true, nil)
	gateway.On("CreateSubscriber", mock.Anything, mock.MatchedBy(func(input mailerlite.CreateSubscriberInput) bool {
		return len(input.Groups) == 0
	})).Return(&mailerlite.Subscriber{ID: "sub-1"}, nil)

	uc := NewSubmitEmailUseCase(store, gateway, map[string]string{"giveaway.other": "111"})

	_, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "Ann",
		Email:     "a@example.com",
		LeadRoute: "giveaway.k8s",
	})

	assert.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestSubmitEmailValidationFailureHasNoSideEffects(t *testing.T) {
	store := new(MockSubmissionStore)
	gateway := new(MockSubscriberGateway)

	uc := NewSubmitEmailUseCase(store, gateway, nil)

	output, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "Ann",
		LeadRoute: "giveaway.k8s",
	})

	assert.Nil(t, output)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Contains(t, domainErr.Fields, "email")

	store.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	gateway.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything)
}

func TestSubmitEmailNameTooShort(t *testing.T) {
	uc := NewSubmitEmailUseCase(new(MockSubmissionStore), new(MockSubscriberGateway), nil)

	_, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "A",
		Email:     "a@example.com",
		LeadRoute: "giveaway.k8s",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Fields, "name")
}

func TestSubmitEmailPersistenceFailureSkipsRemoteSync(t *testing.T) {
	store := new(MockSubmissionStore)
	gateway := new(MockSubscriberGateway)

	store.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil, false, errors.New("connection refused"))

	uc := NewSubmitEmailUseCase(store, gateway, nil)

	output, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "Ann",
		Email:     "a@example.com",
		LeadRoute: "giveaway.k8s",
	})

	assert.Nil(t, output)
	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodeDatabase, techErr.Code)
	gateway.AssertNotCalled(t, "CreateSubscriber", mock.Anything, mock.Anything)
}

func TestSubmitEmailRemoteFailureAfterLocalPersist(t *testing.T) {
	store := new(MockSubmissionStore)
	gateway := new(MockSubscriberGateway)

	contact, lead := storedContact("a@example.com", "Ann")
	store.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(contact, lead, true, nil)
	gateway.On("CreateSubscriber", mock.Anything, mock.Anything).
		Return(nil, &mailerlite.APIError{StatusCode: 422, Body: `{"message":"Unprocessable"}`})

	uc := NewSubmitEmailUseCase(store, gateway, nil)

	output, err := uc.Execute(context.Background(), SubmitEmailInput{
		Name:      "Ann",
		Email:     "a@example.com",
		LeadRoute: "giveaway.k8s",
	})

	assert.Nil(t, output)
	var techErr *TechnicalError
	assert.ErrorAs(t, err, &techErr)
	assert.Equal(t, CodeRemoteSync, techErr.Code)
	// The local write already happened; only the remote sync failed.
	store.AssertExpectations(t)
}
