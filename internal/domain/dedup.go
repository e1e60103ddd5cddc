package domain

// ProposedChanges is the field-level merge plan for a duplicate group's primary
// customer. Nil pointer fields are left untouched on commit.
type ProposedChanges struct {
	Name        *string
	Address     *string
	Email       *string
	Phone       *string
	TotalOrders *int
	TotalSpent  *float64
}

func (p ProposedChanges) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Email == nil &&
		p.Phone == nil && p.TotalOrders == nil && p.TotalSpent == nil
}

// DuplicateGroup is the ephemeral output of duplicate detection: every customer
// sharing one normalized phone, the elected primary, and the merge plan. It is
// never persisted; it lives for a single detect -> review -> commit cycle.
type DuplicateGroup struct {
	NormalizedPhone   string
	Customers         []Customer
	Primary           Customer
	Duplicates        []Customer
	ProposedChanges   ProposedChanges
	OrdersToTransfer  int
	CustomersToDelete []string
}

// GroupResult reports the outcome of committing one duplicate group. A failed
// group is left partially merged; re-running detection is the recovery path.
type GroupResult struct {
	NormalizedPhone   string
	OrdersTransferred int
	CustomersDeleted  int
	Err               error
}

type MergeOutcome struct {
	Groups []GroupResult
}

func (o MergeOutcome) FailedGroups() int {
	n := 0
	for _, g := range o.Groups {
		if g.Err != nil {
			n++
		}
	}
	return n
}
