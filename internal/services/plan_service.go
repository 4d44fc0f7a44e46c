package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	mem "zenjourney/pkg/memcache"
	"zenjourney/pkg/utils"
)

// PlanState is the view state of one planning screen.
// It is exactly one of IdleState, LoadingState, LoadedState or FailedState.
type PlanState interface {
	planState()
}

type IdleState struct{}

type LoadingState struct{}

type LoadedState struct {
	Plan *resp.TravelPlan
	Page int
}

type FailedState struct {
	Message string
}

func (IdleState) planState()    {}
func (LoadingState) planState() {}
func (LoadedState) planState()  {}
func (FailedState) planState()  {}

// PlanScreen owns the state of one planning screen.
type PlanScreen struct {
	ID string

	mu        sync.Mutex
	state     PlanState
	lastInput *request_models.TripRequest
}

func newPlanScreen() *PlanScreen {
	return &PlanScreen{ID: uuid.NewString(), state: IdleState{}}
}

// Snapshot is a consistent copy of a screen's state and last submitted input.
type Snapshot struct {
	ScreenID  string
	State     PlanState
	LastInput *request_models.TripRequest
}

func (s *PlanScreen) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{ScreenID: s.ID, State: s.state, LastInput: s.lastInput}
}

// BearerMinter issues the credential forwarded to the planning service.
type BearerMinter interface {
	CreateBearerToken(id utils.Identity) (string, error)
}

type PlanServiceInterface interface {
	NewScreen() Snapshot
	Screen(id string) (Snapshot, error)
	Submit(ctx context.Context, id string, input request_models.TripRequest, identity *utils.Identity) (<-chan struct{}, error)
	SetPage(id string, page int) (Snapshot, error)
}

type PlanService struct {
	client  PlanClientInterface
	screens *mem.Store[*PlanScreen]
	minter  BearerMinter
	log     *zap.Logger
}

func NewPlanService(client PlanClientInterface, screens *mem.Store[*PlanScreen], minter BearerMinter, log *zap.Logger) PlanServiceInterface {
	return &PlanService{
		client:  client,
		screens: screens,
		minter:  minter,
		log:     log,
	}
}

// NewScreen starts an empty screen. Every visit to the planner gets its own.
func (p *PlanService) NewScreen() Snapshot {
	screen := newPlanScreen()
	p.screens.Set(screen.ID, screen)
	return screen.snapshot()
}

func (p *PlanService) Screen(id string) (Snapshot, error) {
	screen, ok := p.screens.Get(id)
	if !ok {
		return Snapshot{}, utils.ErrScreenNotFound
	}
	return screen.snapshot(), nil
}

// Submit moves the screen to Loading and requests the plan in the background.
// The returned channel is closed once the screen has left Loading.
func (p *PlanService) Submit(ctx context.Context, id string, input request_models.TripRequest, identity *utils.Identity) (<-chan struct{}, error) {
	screen, ok := p.screens.Get(id)
	if !ok {
		return nil, utils.ErrScreenNotFound
	}
	if err := ValidateTripRequest(input); err != nil {
		return nil, err
	}

	screen.mu.Lock()
	if _, loading := screen.state.(LoadingState); loading {
		screen.mu.Unlock()
		return nil, utils.ErrRequestInFlight
	}
	screen.state = LoadingState{}
	screen.lastInput = &input
	screen.mu.Unlock()

	token := p.bearerFor(identity)

	// The request outlives the HTTP request that submitted it.
	reqCtx := context.WithoutCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)

		plan, err := p.client.RequestPlan(reqCtx, input, token)

		screen.mu.Lock()
		defer screen.mu.Unlock()
		if err != nil {
			p.log.Warn("plan request failed", zap.String("screen", id), zap.Error(err))
			screen.state = FailedState{Message: PlanErrorMessage(err)}
			return
		}
		screen.state = LoadedState{Plan: plan, Page: 1}
	}()

	return done, nil
}

// SetPage moves a loaded screen to another page, clamped to the plan's pages.
func (p *PlanService) SetPage(id string, page int) (Snapshot, error) {
	screen, ok := p.screens.Get(id)
	if !ok {
		return Snapshot{}, utils.ErrScreenNotFound
	}

	screen.mu.Lock()
	if loaded, ok := screen.state.(LoadedState); ok {
		total := TotalPages(len(loaded.Plan.Itinerary), PageSize)
		loaded.Page = ClampPage(page, total)
		screen.state = loaded
	}
	screen.mu.Unlock()

	return screen.snapshot(), nil
}

func (p *PlanService) bearerFor(identity *utils.Identity) string {
	if identity == nil || p.minter == nil {
		return ""
	}
	token, err := p.minter.CreateBearerToken(*identity)
	if err != nil {
		p.log.Warn("could not mint planner credential", zap.Error(err))
		return ""
	}
	return token
}

// PlanErrorMessage turns a plan request failure into the message shown to the user.
func PlanErrorMessage(err error) string {
	var verr *utils.ValidationError
	switch {
	case errors.Is(err, utils.ErrTimeout):
		return "Request timed out. Please try again."
	case errors.As(err, &verr):
		return "Please check your trip details: " + verr.Error() + "."
	default:
		return fmt.Sprintf("Failed to fetch travel plan: %s. Ensure backend is running.", err.Error())
	}
}
