package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	"zenjourney/internal/services"
	"zenjourney/internal/web"
	"zenjourney/pkg/middleware"
	"zenjourney/pkg/utils"
)

// planRefreshSeconds is how often a loading plan page reloads itself.
const planRefreshSeconds = 2

type PlanController struct {
	planService services.PlanServiceInterface
	renderer    *web.Renderer
	now         utils.Clock
	log         *zap.Logger
}

func NewPlanController(planService services.PlanServiceInterface, renderer *web.Renderer, log *zap.Logger) *PlanController {
	return &PlanController{
		planService: planService,
		renderer:    renderer,
		now:         time.Now,
		log:         log,
	}
}

// planPage is the data behind plan.html.
type planPage struct {
	ScreenID string
	Form     request_models.TripFormInput
	Loading  bool
	View     *services.PlanView
}

// NewScreen opens a fresh planning screen.
func (p *PlanController) NewScreen(c *gin.Context) {
	snap := p.planService.NewScreen()
	c.Redirect(http.StatusSeeOther, "/plan/"+snap.ScreenID)
}

func (p *PlanController) Show(c *gin.Context) {
	id := c.Param("screen")

	var (
		snap services.Snapshot
		err  error
	)
	if _, ok := c.GetQuery("page"); ok {
		// Out-of-range and malformed pages clamp to the nearest valid page.
		var query request_models.PageQuery
		if bindErr := c.ShouldBindQuery(&query); bindErr != nil {
			query.Page = 1
		}
		snap, err = p.planService.SetPage(id, query.Page)
	} else {
		snap, err = p.planService.Screen(id)
	}
	if errors.Is(err, utils.ErrScreenNotFound) {
		c.Redirect(http.StatusSeeOther, "/plan")
		return
	}

	p.render(c, http.StatusOK, snap, formFromRequest(snap.LastInput), nil)
}

// Submit validates the detailed form and starts the plan request.
func (p *PlanController) Submit(c *gin.Context) {
	id := c.Param("screen")

	var form request_models.TripFormInput
	if err := c.ShouldBind(&form); err != nil {
		p.rerender(c, id, form, &utils.ValidationError{Field: "destination", Message: "is required"})
		return
	}

	input, err := services.NormalizeTripForm(form)
	if err != nil {
		p.rerender(c, id, form, err)
		return
	}

	if err := p.submit(c, id, input); err != nil {
		p.rerender(c, id, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/plan/"+id)
}

// QuickSearch turns the landing page search into a plan request on a new screen.
func (p *PlanController) QuickSearch(c *gin.Context) {
	var form request_models.QuickSearchInput
	if err := c.ShouldBind(&form); err != nil {
		p.renderer.Render(c, http.StatusBadRequest, "landing.html", web.PageData{
			Title: "ZenJourney",
			Flash: &web.Flash{Type: "error", Message: "Please enter a destination"},
		})
		return
	}

	input, err := services.NormalizeQuickSearch(form, p.now())
	if err != nil {
		p.renderer.Render(c, http.StatusBadRequest, "landing.html", web.PageData{
			Title: "ZenJourney",
			Flash: &web.Flash{Type: "error", Message: flashMessage(err)},
		})
		return
	}

	snap := p.planService.NewScreen()
	if err := p.submit(c, snap.ScreenID, input); err != nil {
		p.log.Error("quick search submit failed", zap.String("trace_id", utils.TraceID(c)), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/plan/"+snap.ScreenID)
}

func (p *PlanController) submit(c *gin.Context, id string, input request_models.TripRequest) error {
	ctx := services.WithTraceID(c.Request.Context(), utils.TraceID(c))
	_, err := p.planService.Submit(ctx, id, input, middleware.CurrentIdentity(c))
	return err
}

func (p *PlanController) rerender(c *gin.Context, id string, form request_models.TripFormInput, cause error) {
	snap, err := p.planService.Screen(id)
	if errors.Is(err, utils.ErrScreenNotFound) {
		c.Redirect(http.StatusSeeOther, "/plan")
		return
	}

	status := http.StatusBadRequest
	if errors.Is(cause, utils.ErrRequestInFlight) {
		status = http.StatusConflict
	}
	p.render(c, status, snap, form, &web.Flash{Type: "error", Message: flashMessage(cause)})
}

func (p *PlanController) render(c *gin.Context, status int, snap services.Snapshot, form request_models.TripFormInput, flash *web.Flash) {
	_, loading := snap.State.(services.LoadingState)

	page := web.PageData{
		Title: "Plan your trip",
		Flash: flash,
		Data: planPage{
			ScreenID: snap.ScreenID,
			Form:     form,
			Loading:  loading,
			View:     services.BuildDisplay(snap.State),
		},
	}
	if loading {
		page.RefreshSeconds = planRefreshSeconds
	}
	p.renderer.Render(c, status, "plan.html", page)
}

func formFromRequest(in *request_models.TripRequest) request_models.TripFormInput {
	if in == nil {
		return request_models.TripFormInput{}
	}
	return request_models.TripFormInput{
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      strconv.FormatFloat(in.Budget, 'f', -1, 64),
		Preferences: in.Preferences,
	}
}

func flashMessage(err error) string {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Please check your trip details: " + verr.Error() + "."
	case errors.Is(err, utils.ErrRequestInFlight):
		return "Your plan is still being generated. Please wait."
	default:
		return "Something went wrong. Please try again."
	}
}
