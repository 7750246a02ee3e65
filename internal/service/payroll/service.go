package payroll

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/hrsuite/payroll-backend-go/internal/domain/payroll"
)

// draftSession holds one operator's active draft plus the token of the most
// recent fetch. A response carrying an older token is discarded so a late
// reply can never clobber a newer selection.
type draftSession struct {
	draft      *payroll.PayrollDraft
	fetchToken string
}

type DraftServiceImpl struct {
	repo payroll.Repository

	mu       sync.Mutex
	sessions map[string]*draftSession
}

func NewDraftService(repo payroll.Repository) payroll.DraftService {
	return &DraftServiceImpl{
		repo:     repo,
		sessions: make(map[string]*draftSession),
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

// ========== FETCH / LIFECYCLE ==========

func (s *DraftServiceImpl) FetchDraft(ctx context.Context, req payroll.FetchDraftRequest) (payroll.DraftResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DraftResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.DraftResponse{}, err
	}

	period := payroll.Period{Month: req.PeriodMonth, Year: req.PeriodYear}
	token := uuid.NewString()

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &draftSession{}
		s.sessions[userID] = sess
	}
	if sess.draft != nil && sess.draft.Status == payroll.DraftStatusSubmitting {
		s.mu.Unlock()
		return payroll.DraftResponse{}, payroll.ErrDraftLocked
	}
	sess.fetchToken = token
	s.mu.Unlock()

	raw, fetchErr := s.repo.FetchPayrollData(ctx, companyID, req.EmployeeID, period)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Last request wins: a reply for a superseded selection must not touch
	// the session.
	if sess.fetchToken != token {
		return payroll.DraftResponse{}, payroll.ErrStaleFetch
	}
	if fetchErr != nil {
		// Fetch failure leaves whatever draft was loaded before untouched.
		return payroll.DraftResponse{}, fetchErr
	}

	draft := payroll.NewDraft(req.EmployeeID, period)
	draft.InitializeFromRaw(raw)
	sess.draft = draft

	return mapToDraftResponse(draft), nil
}

func (s *DraftServiceImpl) GetDraft(ctx context.Context) (payroll.DraftResponse, error) {
	_, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.DraftResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.draft == nil {
		return payroll.DraftResponse{}, payroll.ErrDraftNotFound
	}
	return mapToDraftResponse(sess.draft), nil
}

func (s *DraftServiceImpl) DiscardDraft(ctx context.Context) error {
	_, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.draft == nil {
		return payroll.ErrDraftNotFound
	}
	if sess.draft.Status == payroll.DraftStatusSubmitting {
		return payroll.ErrDraftLocked
	}
	delete(s.sessions, userID)
	return nil
}

// withDraft runs op against the caller's loaded draft under the session lock
// and returns the refreshed view on success.
func (s *DraftServiceImpl) withDraft(ctx context.Context, op func(d *payroll.PayrollDraft) error) (payroll.DraftResponse, error) {
	_, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.DraftResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok || sess.draft == nil {
		return payroll.DraftResponse{}, payroll.ErrDraftNotFound
	}

	if err := op(sess.draft); err != nil {
		return payroll.DraftResponse{}, err
	}
	return mapToDraftResponse(sess.draft), nil
}

// ========== LINE ITEM OPERATIONS ==========

func (s *DraftServiceImpl) ToggleLineItem(ctx context.Context, kind payroll.LineItemKind, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.ToggleLineItem(kind, id) })
}

func (s *DraftServiceImpl) BeginLineItemEdit(ctx context.Context, kind payroll.LineItemKind, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.BeginLineItemEdit(kind, id) })
}

func (s *DraftServiceImpl) UpdateLineItemWorking(ctx context.Context, kind payroll.LineItemKind, id, amount string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.UpdateLineItemWorking(kind, id, amount) })
}

func (s *DraftServiceImpl) CommitLineItemEdit(ctx context.Context, kind payroll.LineItemKind, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CommitLineItemEdit(kind, id) })
}

func (s *DraftServiceImpl) CancelLineItemEdit(ctx context.Context, kind payroll.LineItemKind, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CancelLineItemEdit(kind, id) })
}

// ========== HOLIDAY OPERATIONS ==========

func (s *DraftServiceImpl) ToggleHolidayGroup(ctx context.Context, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.ToggleHolidayGroup(id) })
}

func (s *DraftServiceImpl) BeginHolidayDateEdit(ctx context.Context, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.BeginHolidayDateEdit(id) })
}

func (s *DraftServiceImpl) UpdateHolidayDateWorking(ctx context.Context, id, amount string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.UpdateHolidayDateWorking(id, amount) })
}

func (s *DraftServiceImpl) CommitHolidayDateEdit(ctx context.Context, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CommitHolidayDateEdit(id) })
}

func (s *DraftServiceImpl) CancelHolidayDateEdit(ctx context.Context, id string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CancelHolidayDateEdit(id) })
}

// ========== FINAL PAYABLE OPERATIONS ==========

func (s *DraftServiceImpl) BeginFinalPayableEdit(ctx context.Context) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.BeginFinalPayableEdit() })
}

func (s *DraftServiceImpl) CommitFinalPayable(ctx context.Context, value string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CommitFinalPayable(value) })
}

func (s *DraftServiceImpl) CancelFinalPayableEdit(ctx context.Context) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.CancelFinalPayableEdit() })
}

func (s *DraftServiceImpl) ResetFinalPayableToAuto(ctx context.Context) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.ResetFinalPayableToAuto() })
}

// ========== REMARK / SUBMISSION ==========

func (s *DraftServiceImpl) SetRemark(ctx context.Context, remark string) (payroll.DraftResponse, error) {
	return s.withDraft(ctx, func(d *payroll.PayrollDraft) error { return d.SetRemark(remark) })
}

func (s *DraftServiceImpl) Submit(ctx context.Context) (payroll.SubmitResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SubmitResponse{}, err
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok || sess.draft == nil {
		s.mu.Unlock()
		return payroll.SubmitResponse{}, payroll.ErrDraftNotFound
	}
	draft := sess.draft
	if draft.Status == payroll.DraftStatusSubmitting {
		s.mu.Unlock()
		return payroll.SubmitResponse{}, payroll.ErrDraftLocked
	}
	if err := payroll.CanSubmit(draft); err != nil {
		s.mu.Unlock()
		return payroll.SubmitResponse{}, err
	}
	// Lock the draft for the duration of the round trip; the payload is
	// built before releasing the session lock so it cannot race a mutation.
	draft.Status = payroll.DraftStatusSubmitting
	payload := payroll.BuildSubmission(draft)
	s.mu.Unlock()

	recordID, submitErr := s.repo.SubmitPayroll(ctx, companyID, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if submitErr != nil {
		// Draft fully retained, remark included; the operator retries
		// explicitly.
		draft.Status = payroll.DraftStatusFailed
		return payroll.SubmitResponse{}, submitErr
	}

	draft.Status = payroll.DraftStatusSubmitted
	if s.sessions[userID] == sess {
		delete(s.sessions, userID)
	}
	return payroll.SubmitResponse{RecordID: recordID}, nil
}

// ========== HELPERS ==========

func mapToDraftResponse(d *payroll.PayrollDraft) payroll.DraftResponse {
	return payroll.DraftResponse{
		EmployeeID:  d.EmployeeID,
		PeriodMonth: d.Period.Month,
		PeriodYear:  d.Period.Year,
		Status:      string(d.Status),
		Attendance: payroll.AttendanceView{
			BaseSalary:         d.Attendance.BaseSalary,
			TotalOvertimeHours: d.Attendance.TotalOvertimeHours,
			OvertimePay:        d.Attendance.OvertimePay,
			WeekoffPay:         d.Attendance.WeekoffPay,
			PaySalary:          d.Attendance.PaySalary,
			Shifts:             attendanceViews(d.Attendance.Shifts),
		},
		Allowances: lineItemViews(d.Allowances),
		Deductions: lineItemViews(d.Deductions),
		Loans:      lineItemViews(d.Loans),
		Advances:   lineItemViews(d.Advances),
		Holidays:   holidayViews(d.Holidays),
		Totals: payroll.TotalsView{
			PaySalary:        d.Totals.PaySalary,
			TotalAllowances:  d.Totals.TotalAllowances,
			TotalDeductions:  d.Totals.TotalDeductions,
			TotalHolidayPay:  d.Totals.TotalHolidayPay,
			TotalLoans:       d.Totals.TotalLoans,
			TotalAdvances:    d.Totals.TotalAdvances,
			AutoFinalPayable: d.Totals.AutoFinalPayable,
		},
		FinalPayable: payroll.FinalPayableView{
			Value:     d.FinalPayable.Value,
			Mode:      string(d.FinalPayable.Mode),
			IsEditing: d.FinalPayable.IsEditing,
		},
		Remark:     d.Remark,
		HasAnyEdit: d.HasAnyEdit,
	}
}

func lineItemViews(l *payroll.LineItemLedger) []payroll.LineItemView {
	views := make([]payroll.LineItemView, 0, len(l.Items))
	for _, item := range l.Items {
		views = append(views, payroll.LineItemView{
			ID:            item.ID,
			Label:         item.Label,
			DefaultAmount: item.DefaultAmount,
			CurrentAmount: item.CurrentAmount,
			Included:      item.Included,
			Editable:      item.Editable,
			IsEditing:     item.IsEditing,
		})
	}
	return views
}

func holidayViews(l *payroll.HolidayLedger) []payroll.HolidayGroupView {
	views := make([]payroll.HolidayGroupView, 0, len(l.Groups))
	for _, group := range l.Groups {
		dates := make([]payroll.HolidayDateView, 0, len(group.Dates))
		for _, date := range group.Dates {
			dates = append(dates, payroll.HolidayDateView{
				ID:            date.ID,
				Date:          date.Date,
				Paid:          date.Paid,
				DefaultAmount: date.DefaultAmount,
				CurrentAmount: date.CurrentAmount,
				IsEditing:     date.IsEditing,
			})
		}
		views = append(views, payroll.HolidayGroupView{
			ID:       group.ID,
			Name:     group.Name,
			Included: group.Included,
			Dates:    dates,
		})
	}
	return views
}

func attendanceViews(shifts []payroll.Shift) []payroll.RawAttendanceSet {
	sets := make([]payroll.RawAttendanceSet, 0, len(shifts))
	for _, shift := range shifts {
		rows := make([]payroll.RawAttendanceRow, 0, len(shift.Records))
		for _, rec := range shift.Records {
			rows = append(rows, payroll.RawAttendanceRow{
				Date:           rec.Date,
				StatusName:     rec.StatusName,
				ActualHours:    rec.ActualHours,
				OvertimeHours:  rec.OvertimeHours,
				HourlySalary:   rec.HourlySalary,
				DailySalary:    rec.DailySalary,
				OvertimeSalary: rec.OvertimeSalary,
			})
		}
		sets = append(sets, payroll.RawAttendanceSet{
			ShiftName:        shift.Name,
			TotalWorkingDays: shift.TotalWorkingDays,
			Attendance:       rows,
		})
	}
	return sets
}
