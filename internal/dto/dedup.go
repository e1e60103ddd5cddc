package dto

// DuplicateGroupResponse is the merge plan shown on the operator review
// screen. OrdersToTransfer is the live order count; the proposed totals come
// from cached aggregates. Both appear so drift between the two is visible.
type DuplicateGroupResponse struct {
	NormalizedPhone   string                  `json:"normalizedPhone"`
	Primary           CustomerResponse        `json:"primary"`
	Duplicates        []CustomerResponse      `json:"duplicates"`
	ProposedChanges   ProposedChangesResponse `json:"proposedChanges"`
	OrdersToTransfer  int                     `json:"ordersToTransfer"`
	CustomersToDelete []string                `json:"customersToDelete"`
}

type ProposedChangesResponse struct {
	Name        *string  `json:"name,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	TotalOrders *int     `json:"totalOrders,omitempty"`
	TotalSpent  *float64 `json:"totalSpent,omitempty"`
}

type DetectDuplicatesResponse struct {
	TraceID string                   `json:"traceId"`
	State   string                   `json:"state"`
	Groups  []DuplicateGroupResponse `json:"groups"`
}

type MergeGroupResultResponse struct {
	NormalizedPhone   string `json:"normalizedPhone"`
	OrdersTransferred int    `json:"ordersTransferred"`
	CustomersDeleted  int    `json:"customersDeleted"`
	Error             string `json:"error,omitempty"`
}

type CommitMergeResponse struct {
	TraceID      string                     `json:"traceId"`
	State        string                     `json:"state"`
	Groups       []MergeGroupResultResponse `json:"groups"`
	FailedGroups int                        `json:"failedGroups"`
}
