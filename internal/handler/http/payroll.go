package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hrsuite/payroll-backend-go/internal/domain/payroll"
	"github.com/hrsuite/payroll-backend-go/internal/handler/http/response"
)

type PayrollDraftHandler interface {
	// Draft lifecycle
	FetchDraft(w http.ResponseWriter, r *http.Request)
	GetDraft(w http.ResponseWriter, r *http.Request)
	DiscardDraft(w http.ResponseWriter, r *http.Request)

	// Line items (allowance/deduction/loan/advance)
	ToggleLineItem(w http.ResponseWriter, r *http.Request)
	BeginLineItemEdit(w http.ResponseWriter, r *http.Request)
	UpdateLineItemWorking(w http.ResponseWriter, r *http.Request)
	CommitLineItemEdit(w http.ResponseWriter, r *http.Request)
	CancelLineItemEdit(w http.ResponseWriter, r *http.Request)

	// Holidays
	ToggleHolidayGroup(w http.ResponseWriter, r *http.Request)
	BeginHolidayDateEdit(w http.ResponseWriter, r *http.Request)
	UpdateHolidayDateWorking(w http.ResponseWriter, r *http.Request)
	CommitHolidayDateEdit(w http.ResponseWriter, r *http.Request)
	CancelHolidayDateEdit(w http.ResponseWriter, r *http.Request)

	// Final payable
	BeginFinalPayableEdit(w http.ResponseWriter, r *http.Request)
	CommitFinalPayable(w http.ResponseWriter, r *http.Request)
	CancelFinalPayableEdit(w http.ResponseWriter, r *http.Request)
	ResetFinalPayableToAuto(w http.ResponseWriter, r *http.Request)

	// Submission
	SetRemark(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type payrollDraftHandlerImpl struct {
	draftService payroll.DraftService
}

func NewPayrollDraftHandler(draftService payroll.DraftService) PayrollDraftHandler {
	return &payrollDraftHandlerImpl{draftService: draftService}
}

// ========== DRAFT LIFECYCLE ==========

func (h *payrollDraftHandlerImpl) FetchDraft(w http.ResponseWriter, r *http.Request) {
	var req payroll.FetchDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.draftService.FetchDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) GetDraft(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.GetDraft(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.draftService.DiscardDraft(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll draft discarded", nil)
}

// ========== LINE ITEMS ==========

// lineItemKind resolves the {kind} route segment. The same handler set serves
// all four ledgers; the kind decides editability and ceiling rules downstream.
func lineItemKind(w http.ResponseWriter, r *http.Request) (payroll.LineItemKind, bool) {
	kind, ok := payroll.ParseLineItemKind(chi.URLParam(r, "kind"))
	if !ok {
		response.BadRequest(w, "Unknown line item kind", nil)
		return "", false
	}
	return kind, true
}

func (h *payrollDraftHandlerImpl) ToggleLineItem(w http.ResponseWriter, r *http.Request) {
	kind, ok := lineItemKind(w, r)
	if !ok {
		return
	}

	result, err := h.draftService.ToggleLineItem(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) BeginLineItemEdit(w http.ResponseWriter, r *http.Request) {
	kind, ok := lineItemKind(w, r)
	if !ok {
		return
	}

	result, err := h.draftService.BeginLineItemEdit(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) UpdateLineItemWorking(w http.ResponseWriter, r *http.Request) {
	kind, ok := lineItemKind(w, r)
	if !ok {
		return
	}

	var req payroll.WorkingAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.draftService.UpdateLineItemWorking(r.Context(), kind, chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CommitLineItemEdit(w http.ResponseWriter, r *http.Request) {
	kind, ok := lineItemKind(w, r)
	if !ok {
		return
	}

	result, err := h.draftService.CommitLineItemEdit(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CancelLineItemEdit(w http.ResponseWriter, r *http.Request) {
	kind, ok := lineItemKind(w, r)
	if !ok {
		return
	}

	result, err := h.draftService.CancelLineItemEdit(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== HOLIDAYS ==========

func (h *payrollDraftHandlerImpl) ToggleHolidayGroup(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.ToggleHolidayGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) BeginHolidayDateEdit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.BeginHolidayDateEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) UpdateHolidayDateWorking(w http.ResponseWriter, r *http.Request) {
	var req payroll.WorkingAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.draftService.UpdateHolidayDateWorking(r.Context(), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CommitHolidayDateEdit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.CommitHolidayDateEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CancelHolidayDateEdit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.CancelHolidayDateEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== FINAL PAYABLE ==========

func (h *payrollDraftHandlerImpl) BeginFinalPayableEdit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.BeginFinalPayableEdit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CommitFinalPayable(w http.ResponseWriter, r *http.Request) {
	var req payroll.CommitFinalPayableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.draftService.CommitFinalPayable(r.Context(), req.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) CancelFinalPayableEdit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.CancelFinalPayableEdit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) ResetFinalPayableToAuto(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.ResetFinalPayableToAuto(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SUBMISSION ==========

func (h *payrollDraftHandlerImpl) SetRemark(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetRemarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.draftService.SetRemark(r.Context(), req.Remark)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollDraftHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	result, err := h.draftService.Submit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll submitted", result)
}
