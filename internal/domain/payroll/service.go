package payroll

import "context"

// DraftService orchestrates one interactive payroll draft per operator:
// fetching raw data (last-request-wins), dispatching ledger mutations, and
// the validated atomic submission.
type DraftService interface {
	FetchDraft(ctx context.Context, req FetchDraftRequest) (DraftResponse, error)
	GetDraft(ctx context.Context) (DraftResponse, error)
	DiscardDraft(ctx context.Context) error

	ToggleLineItem(ctx context.Context, kind LineItemKind, id string) (DraftResponse, error)
	BeginLineItemEdit(ctx context.Context, kind LineItemKind, id string) (DraftResponse, error)
	UpdateLineItemWorking(ctx context.Context, kind LineItemKind, id, amount string) (DraftResponse, error)
	CommitLineItemEdit(ctx context.Context, kind LineItemKind, id string) (DraftResponse, error)
	CancelLineItemEdit(ctx context.Context, kind LineItemKind, id string) (DraftResponse, error)

	ToggleHolidayGroup(ctx context.Context, id string) (DraftResponse, error)
	BeginHolidayDateEdit(ctx context.Context, id string) (DraftResponse, error)
	UpdateHolidayDateWorking(ctx context.Context, id, amount string) (DraftResponse, error)
	CommitHolidayDateEdit(ctx context.Context, id string) (DraftResponse, error)
	CancelHolidayDateEdit(ctx context.Context, id string) (DraftResponse, error)

	BeginFinalPayableEdit(ctx context.Context) (DraftResponse, error)
	CommitFinalPayable(ctx context.Context, value string) (DraftResponse, error)
	CancelFinalPayableEdit(ctx context.Context) (DraftResponse, error)
	ResetFinalPayableToAuto(ctx context.Context) (DraftResponse, error)

	SetRemark(ctx context.Context, remark string) (DraftResponse, error)
	Submit(ctx context.Context) (SubmitResponse, error)
}
