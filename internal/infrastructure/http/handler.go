package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"

	appCatalog "github.com/streamline-shop/streamline/internal/application/catalog"
	appOffer "github.com/streamline-shop/streamline/internal/application/offer"
	appOrder "github.com/streamline-shop/streamline/internal/application/order"
	domainCatalog "github.com/streamline-shop/streamline/internal/domain/catalog"
	domainOffer "github.com/streamline-shop/streamline/internal/domain/offer"
	domainOrder "github.com/streamline-shop/streamline/internal/domain/order"
	"github.com/streamline-shop/streamline/internal/pkg/validation"
)

type Handler struct {
	catalogService *appCatalog.Service
	offerService   *appOffer.Service
	orderService   *appOrder.Service
	validate       *validatorv10.Validate
}

func NewHandler(catalogSvc *appCatalog.Service, offerSvc *appOffer.Service, orderSvc *appOrder.Service) *Handler {
	return &Handler{
		catalogService: catalogSvc,
		offerService:   offerSvc,
		orderService:   orderSvc,
		validate:       validation.New(),
	}
}

func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/items", h.method(http.MethodGet, h.handleListItems))
	mux.HandleFunc("/items-management", h.methods(map[string]http.HandlerFunc{
		http.MethodPost:   h.handleUpsertItem,
		http.MethodDelete: h.handleDeleteItem,
	}))
	mux.HandleFunc("/offers", h.method(http.MethodGet, h.handleListOffers))
	mux.HandleFunc("/offers-management", h.methods(map[string]http.HandlerFunc{
		http.MethodPost:   h.handleUpsertOffer,
		http.MethodDelete: h.handleDeleteOffer,
	}))
	mux.HandleFunc("/orders", h.methods(map[string]http.HandlerFunc{
		http.MethodPost: h.handleSubmitOrder,
		http.MethodGet:  h.handleListOrders,
	}))
	mux.HandleFunc("/health", h.method(http.MethodGet, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))

	return mux
}

type itemPayload struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}

func itemToPayload(item *domainCatalog.Item) itemPayload {
	return itemPayload{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price,
		Stock:    item.Stock,
	}
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]itemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, itemToPayload(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpsertItem(w http.ResponseWriter, r *http.Request) {
	var req itemPayload
	if !h.bind(w, r, &req) {
		return
	}

	stored, err := h.catalogService.Upsert(r.Context(), appCatalog.UpsertItemInput{
		ID:       req.ID,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemToPayload(stored))
}

type deleteRequest struct {
	ID string `json:"id" validate:"required"`
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.bind(w, r, &req) {
		return
	}

	removed, err := h.catalogService.Delete(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "item deleted",
		"item":    itemToPayload(removed),
	})
}

type offerPayload struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name" validate:"required"`
	Description        string  `json:"description"`
	Category           string  `json:"category" validate:"required"`
	DiscountPercentage float64 `json:"discountPercentage" validate:"gte=0,lte=100"`
	MinQuantity        int     `json:"minQuantity" validate:"gte=1"`
	ValidUntil         string  `json:"validUntil" validate:"required"`
}

func offerToPayload(o *domainOffer.Offer) offerPayload {
	return offerPayload{
		ID:                 o.ID,
		Name:               o.Name,
		Description:        o.Description,
		Category:           o.Category,
		DiscountPercentage: o.DiscountPercentage,
		MinQuantity:        o.MinQuantity,
		ValidUntil:         o.ValidUntil,
	}
}

func (h *Handler) handleListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]offerPayload, 0, len(offers))
	for _, o := range offers {
		out = append(out, offerToPayload(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleUpsertOffer(w http.ResponseWriter, r *http.Request) {
	var req offerPayload
	if !h.bind(w, r, &req) {
		return
	}

	stored, err := h.offerService.Upsert(r.Context(), appOffer.UpsertOfferInput{
		ID:                 req.ID,
		Name:               req.Name,
		Description:        req.Description,
		Category:           req.Category,
		DiscountPercentage: req.DiscountPercentage,
		MinQuantity:        req.MinQuantity,
		ValidUntil:         req.ValidUntil,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, offerToPayload(stored))
}

func (h *Handler) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !h.bind(w, r, &req) {
		return
	}

	removed, err := h.offerService.Delete(r.Context(), req.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "offer deleted",
		"offer":   offerToPayload(removed),
	})
}

type orderLinePayload struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type submitOrderRequest struct {
	Items         []orderLinePayload `json:"items" validate:"required,min=1,dive"`
	AppliedOffers []string           `json:"appliedOffers"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
}

type orderPayload struct {
	ID            string             `json:"id"`
	Items         []orderLinePayload `json:"items"`
	AppliedOffers []string           `json:"appliedOffers"`
	Subtotal      float64            `json:"subtotal"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	Date          string             `json:"date"`
}

func orderToPayload(o *domainOrder.Order) orderPayload {
	lines := make([]orderLinePayload, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLinePayload{ID: l.ItemID, Quantity: l.Quantity})
	}
	applied := o.AppliedOffers
	if applied == nil {
		applied = []string{}
	}
	return orderPayload{
		ID:            o.ID,
		Items:         lines,
		AppliedOffers: applied,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Total:         o.Total,
		Date:          o.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitOrderRequest
	if !h.bind(w, r, &req) {
		return
	}

	lines := make([]appOrder.LineInput, 0, len(req.Items))
	for _, l := range req.Items {
		lines = append(lines, appOrder.LineInput{ItemID: l.ID, Quantity: l.Quantity})
	}

	placed, err := h.orderService.Submit(r.Context(), appOrder.SubmitOrderInput{
		Lines:         lines,
		AppliedOffers: req.AppliedOffers,
		Subtotal:      req.Subtotal,
		Discount:      req.Discount,
		Total:         req.Total,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "order placed",
		"order_id": placed.ID,
	})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]orderPayload, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderToPayload(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// bind decodes the body into dst and validates it, answering 400 on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": validation.ErrorMap(err),
		})
		return false
	}
	return true
}

func (h *Handler) method(method string, handler http.HandlerFunc) http.HandlerFunc {
	return h.methods(map[string]http.HandlerFunc{method: handler})
}

func (h *Handler) methods(handlers map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler, ok := handlers[r.Method]
		if !ok {
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		handler(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainCatalog.ErrNotFound),
		errors.Is(err, domainOffer.ErrNotFound),
		errors.Is(err, domainOrder.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainCatalog.ErrInsufficientStock),
		errors.Is(err, domainCatalog.ErrInvalidName),
		errors.Is(err, domainCatalog.ErrInvalidPrice),
		errors.Is(err, domainCatalog.ErrInvalidStock),
		errors.Is(err, domainCatalog.ErrInvalidQuantity),
		errors.Is(err, domainOffer.ErrInvalidName),
		errors.Is(err, domainOffer.ErrInvalidDiscount),
		errors.Is(err, domainOffer.ErrInvalidMinQuantity),
		errors.Is(err, domainOrder.ErrNoLines),
		errors.Is(err, domainOrder.ErrMissingItemID),
		errors.Is(err, domainOrder.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
