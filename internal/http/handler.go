package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/magadrive/pricing-core/internal/domain"
	"github.com/magadrive/pricing-core/internal/http/response"
	"github.com/magadrive/pricing-core/internal/observability"
)

const serviceName = "pricing-core"

// EventPriceComputed is published once per successful computation.
const EventPriceComputed = "price computed"

// Handler handles HTTP requests.
type Handler struct {
	engine   domain.FareCalculator
	events   domain.EventPublisher
	tariff   domain.PricingConfig
	validate *validator.Validate
	now      func() time.Time
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	engine domain.FareCalculator,
	events domain.EventPublisher,
	tariff domain.PricingConfig,
) *Handler {
	return &Handler{
		engine:   engine,
		events:   events,
		tariff:   tariff,
		validate: newValidator(),
		now:      time.Now,
	}
}

// priceData is the success payload of POST /price.
type priceData struct {
	Price     int64            `json:"price"`
	Currency  string           `json:"currency"`
	Breakdown domain.Breakdown `json:"breakdown"`
}

// HandlePrice computes a fare.
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	traceID := observability.GetTraceID(ctx)

	// Early validation.
	if r.Method != http.MethodPost {
		methodNotAllowed(w, traceID, http.MethodPost)
		return
	}

	req, err := decodePriceRequest(w, r, h.validate)
	if err != nil {
		var reqErr *requestError
		if !errors.As(err, &reqErr) {
			reqErr = &requestError{code: response.CodeInvalidRequest, message: "invalid request"}
		}

		observability.FromContext(ctx).Info("price request rejected",
			observability.String("code", reqErr.code),
			observability.String("reason", reqErr.message),
		)
		h.writeFail(w, r, http.StatusBadRequest, reqErr.code, reqErr.message)
		return
	}

	// Inject class into context for downstream logging.
	ctx = observability.WithVehicleClass(ctx, string(req.Class))
	logger := observability.FromContext(ctx)

	result, err := h.engine.Compute(ctx, req)
	if err != nil {
		logger.Error("price calculation failed",
			observability.Error(err),
			observability.Float64("distance_m", req.DistanceM),
			observability.Float64("eta_sec", req.EtaSec),
		)

		if errors.Is(err, domain.ErrPriceCalculation) {
			h.writeFail(w, r, http.StatusInternalServerError,
				response.CodePriceCalculationFailed, "failed to calculate price")
			return
		}

		h.writeFail(w, r, http.StatusInternalServerError,
			response.CodeInternalError, "internal server error")
		return
	}

	if h.events != nil {
		data := map[string]interface{}{
			"distance_m":          req.DistanceM,
			"eta_sec":             req.EtaSec,
			"vehicle_class":       string(req.Class),
			"price":               result.Price,
			"currency":            result.Currency,
			"subtotal":            result.Breakdown.Subtotal,
			"class_multiplier":    result.Breakdown.ClassMultiplier,
			"distance_multiplier": result.Breakdown.DistanceMultiplier,
			"time_multiplier":     result.Breakdown.TimeMultiplier,
			"demand_coeff":        result.Breakdown.DemandCoeff,
		}
		if req.BasePrice != nil {
			data["base_price_override"] = *req.BasePrice
		}
		h.events.Publish(ctx, EventPriceComputed, data)
	}

	encodeErr := response.Success(w, traceID, http.StatusOK, priceData{
		Price:     result.Price,
		Currency:  result.Currency,
		Breakdown: result.Breakdown,
	})
	if encodeErr != nil {
		logger.Error("failed to encode response", observability.Error(encodeErr))
	}
}

// HandleHealth handles liveness probes.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, observability.GetTraceID(r.Context()), http.MethodGet)
		return
	}

	if err := response.JSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   serviceName,
	}); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Warn("failed to encode health response", observability.Error(err))
	}
}

// readyConfig is the non-secret tariff snapshot reported by /readyz.
type readyConfig struct {
	BasePrice              float64            `json:"basePrice"`
	PricePerKm             float64            `json:"pricePerKm"`
	PricePerMinute         float64            `json:"pricePerMinute"`
	DemandCoeffMin         float64            `json:"demandCoeffMin"`
	DemandCoeffMax         float64            `json:"demandCoeffMax"`
	ClassMultipliers       map[string]float64 `json:"classMultipliers"`
	LongDistanceThresholdM float64            `json:"longDistanceThresholdM"`
	LongDistanceFactor     float64            `json:"longDistanceFactor"`
	PeakMultiplier         float64            `json:"peakMultiplier"`
	NightMultiplier        float64            `json:"nightMultiplier"`
	PeakHours              []string           `json:"peakHours"`
	NightHours             []string           `json:"nightHours"`
	Timezone               string             `json:"timezone"`
}

type readyStatus struct {
	Status    string      `json:"status"`
	Timestamp string      `json:"timestamp"`
	Config    readyConfig `json:"config"`
}

// HandleReady handles readiness probes and reports the active tariff.
func (h *Handler) HandleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, observability.GetTraceID(r.Context()), http.MethodGet)
		return
	}

	if err := response.JSON(w, http.StatusOK, readyStatus{
		Status:    "ready",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Config:    snapshotTariff(h.tariff),
	}); err != nil {
		observability.FromContext(r.Context()).Warn("failed to encode ready response", observability.Error(err))
	}
}

// HandleNotFound answers unknown routes with an envelope.
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.writeFail(w, r, http.StatusNotFound, response.CodeNotFound, "route not found")
}

func (h *Handler) writeFail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if err := response.Fail(w, observability.GetTraceID(r.Context()), status, code, message); err != nil {
		observability.FromContext(r.Context()).Error("failed to encode error response", observability.Error(err))
	}
}

func methodNotAllowed(w http.ResponseWriter, traceID, allowed string) {
	w.Header().Set("Allow", allowed)
	_ = response.Fail(w, traceID, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "method not allowed")
}

func snapshotTariff(t domain.PricingConfig) readyConfig {
	tz := ""
	if t.Location != nil {
		tz = t.Location.String()
	}

	return readyConfig{
		BasePrice:              t.BasePrice,
		PricePerKm:             t.PricePerKm,
		PricePerMinute:         t.PricePerMinute,
		DemandCoeffMin:         t.DemandMin,
		DemandCoeffMax:         t.DemandMax,
		ClassMultipliers:       t.Classes.Snapshot(),
		LongDistanceThresholdM: t.LongDistanceThresholdM,
		LongDistanceFactor:     t.LongDistanceFactor,
		PeakMultiplier:         t.PeakMultiplier,
		NightMultiplier:        t.NightMultiplier,
		PeakHours:              windowStrings(t.PeakWindows),
		NightHours:             windowStrings(t.NightWindows),
		Timezone:               tz,
	}
}

func windowStrings(windows []domain.HourWindow) []string {
	out := make([]string, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.String())
	}
	return out
}
