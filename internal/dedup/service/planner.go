// Package service builds merge plans for duplicate customers. Everything here
// is pure: detection I/O lives in the usecase layer.
package service

import (
	"sort"

	"orderdesk/internal/domain"
	"orderdesk/internal/phone"
)

// CandidateGroup is a set of customers sharing one comparison key, before any
// merge plan exists.
type CandidateGroup struct {
	NormalizedPhone string
	Customers       []domain.Customer
}

// GroupCandidates buckets customers by the comparison key of their phone and
// keeps only buckets with more than one member. Groups come back ordered by
// normalized phone so detection output is stable.
func GroupCandidates(customers []domain.Customer) []CandidateGroup {
	buckets := make(map[string][]domain.Customer)
	for _, c := range customers {
		key := phone.ComparisonKey(c.Phone)
		buckets[key] = append(buckets[key], c)
	}

	keys := make([]string, 0, len(buckets))
	for key, members := range buckets {
		if len(members) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	groups := make([]CandidateGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, CandidateGroup{
			NormalizedPhone: key,
			Customers:       buckets[key],
		})
	}

	return groups
}

// DuplicateIDs lists the ids that would be retired if the group merged: every
// member except the eventual primary.
func (g CandidateGroup) DuplicateIDs() []string {
	sorted := sortByAge(g.Customers)
	ids := make([]string, 0, len(sorted)-1)
	for _, c := range sorted[1:] {
		ids = append(ids, c.ID)
	}
	return ids
}

// BuildGroup elects the group's primary and computes the merge plan.
//
// liveOrderCounts carries the authoritative order count per duplicate, queried
// from the order store. ordersToTransfer comes from those live counts, while
// the proposed totalOrders/totalSpent come from the duplicates' CACHED
// aggregates. The two sources can disagree when aggregates have drifted; the
// plan surfaces both so the reviewer sees the drift instead of having it
// silently harmonized.
func BuildGroup(candidate CandidateGroup, liveOrderCounts map[string]int) domain.DuplicateGroup {
	sorted := sortByAge(candidate.Customers)

	primary := sorted[0]
	duplicates := sorted[1:]

	ordersToTransfer := 0
	for _, dup := range duplicates {
		ordersToTransfer += liveOrderCounts[dup.ID]
	}

	changes := domain.ProposedChanges{}

	if !primary.HasAddress() {
		for _, dup := range duplicates {
			if dup.HasAddress() {
				changes.Address = dup.Address
				break
			}
		}
	}

	if !primary.HasEmail() {
		for _, dup := range duplicates {
			if dup.HasEmail() {
				changes.Email = dup.Email
				break
			}
		}
	}

	if primary.Name == domain.UnknownCustomerName {
		for _, dup := range duplicates {
			if dup.Name != "" && dup.Name != domain.UnknownCustomerName {
				name := dup.Name
				changes.Name = &name
				break
			}
		}
	}

	if formatted := phone.DisplayForm(primary.Phone); formatted != primary.Phone {
		changes.Phone = &formatted
	}

	// Totals are only restated when there are live orders to move; a group of
	// order-less duplicates keeps the primary's cached aggregates untouched.
	if ordersToTransfer > 0 {
		totalOrders := primary.TotalOrders
		totalSpent := primary.TotalSpent
		for _, dup := range duplicates {
			totalOrders += dup.TotalOrders
			totalSpent += dup.TotalSpent
		}
		changes.TotalOrders = &totalOrders
		changes.TotalSpent = &totalSpent
	}

	deleteIDs := make([]string, 0, len(duplicates))
	for _, dup := range duplicates {
		deleteIDs = append(deleteIDs, dup.ID)
	}

	return domain.DuplicateGroup{
		NormalizedPhone:   candidate.NormalizedPhone,
		Customers:         candidate.Customers,
		Primary:           primary,
		Duplicates:        duplicates,
		ProposedChanges:   changes,
		OrdersToTransfer:  ordersToTransfer,
		CustomersToDelete: deleteIDs,
	}
}

// sortByAge orders members oldest first; the oldest survives a merge. Equal
// timestamps break on id so election is deterministic.
func sortByAge(customers []domain.Customer) []domain.Customer {
	sorted := make([]domain.Customer, len(customers))
	copy(sorted, customers)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}
