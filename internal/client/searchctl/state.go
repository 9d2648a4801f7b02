// internal/client/searchctl/state.go
package searchctl

import (
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
)

// MinSuggestRunes is the shortest query that fetches suggestions.
const MinSuggestRunes = 2

// Status is where the current search cycle stands.
type Status int

const (
	Idle Status = iota
	Searching
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Searching:
		return "searching"
	case Succeeded:
		return "success"
	case Failed:
		return "failed"
	}
	return "idle"
}

// State is everything the UI renders. It only changes through reduce, so a
// value returned by Controller.Snapshot is never mutated afterwards.
type State struct {
	Model         filter.Model
	Opportunities []models.Opportunity
	Pagination    models.Pagination
	HasMore       bool
	Status        Status
	LoadingMore   bool
	Err           error

	Suggestions   []models.Suggestion
	SavedSearches []models.SavedSearch

	searchSeq  uint64
	suggestSeq uint64
}

func initialState() State {
	m := filter.Default()
	return State{
		Model:         m,
		Opportunities: []models.Opportunity{},
		Pagination:    models.Pagination{Page: m.Page, Limit: m.Limit},
		Suggestions:   []models.Suggestion{},
		SavedSearches: []models.SavedSearch{},
	}
}

type action interface{ isAction() }

type queryChanged struct{ query string }

type filtersChanged struct{ filters filter.Filters }

type sortChanged struct {
	by    filter.SortBy
	order filter.SortOrder
}

type resetRequested struct{}

type savedApplied struct{ snapshot filter.Snapshot }

type modelReplaced struct{ model filter.Model }

type searchStarted struct{ loadMore bool }

// refreshRequested rewinds to the first page so a refresh replaces the
// whole list instead of the last appended page.
type refreshRequested struct{}

type searchSucceeded struct {
	seq      uint64
	loadMore bool
	page     models.ResultPage
}

type searchFailed struct {
	seq      uint64
	loadMore bool
	err      error
}

type suggestStarted struct{}

type suggestionsSet struct {
	seq  uint64
	list []models.Suggestion
}

type savedListLoaded struct{ list []models.SavedSearch }

type savedAdded struct{ saved models.SavedSearch }

type savedRemoved struct{ id string }

func (queryChanged) isAction()     {}
func (filtersChanged) isAction()   {}
func (sortChanged) isAction()      {}
func (resetRequested) isAction()   {}
func (savedApplied) isAction()     {}
func (modelReplaced) isAction()    {}
func (searchStarted) isAction()    {}
func (refreshRequested) isAction() {}
func (searchSucceeded) isAction()  {}
func (searchFailed) isAction()     {}
func (suggestStarted) isAction()   {}
func (suggestionsSet) isAction()   {}
func (savedListLoaded) isAction()  {}
func (savedAdded) isAction()       {}
func (savedRemoved) isAction()     {}

// reduce returns the state after a. It never mutates s.
//
// Any change to the model bumps searchSeq, so a response for an earlier
// model is dropped even if no newer request has been issued yet.
func reduce(s State, a action) State {
	next := s
	switch a := a.(type) {
	case queryChanged:
		next.Model = s.Model.Clone()
		next.Model.Query = a.query
		next.Model.Page = filter.DefaultPage
		next.searchSeq++
		if shortQuery(a.query) {
			next.Suggestions = []models.Suggestion{}
			next.suggestSeq++
		}

	case filtersChanged:
		next.Model = s.Model.Clone()
		next.Model.Filters = a.filters.Clone()
		next.Model.Page = filter.DefaultPage
		next.searchSeq++

	case sortChanged:
		next.Model = s.Model.Clone()
		next.Model.SortBy = a.by
		next.Model.SortOrder = a.order
		next.Model.Page = filter.DefaultPage
		next.Model = next.Model.Normalize()
		next.searchSeq++

	case resetRequested:
		next.Model = filter.Default()
		next.Suggestions = []models.Suggestion{}
		next.suggestSeq++
		next.searchSeq++

	case savedApplied:
		next.Model = filter.FromSnapshot(a.snapshot)
		next.Suggestions = []models.Suggestion{}
		next.suggestSeq++
		next.searchSeq++

	case modelReplaced:
		next.Model = a.model.Clone().Normalize()
		if next.Model.Query != s.Model.Query {
			next.Suggestions = []models.Suggestion{}
			next.suggestSeq++
		}
		next.searchSeq++

	case refreshRequested:
		if s.Model.Page != filter.DefaultPage {
			next.Model = s.Model.Clone()
			next.Model.Page = filter.DefaultPage
			next.searchSeq++
		}

	case searchStarted:
		next.searchSeq++
		next.Status = Searching
		next.LoadingMore = a.loadMore
		next.Err = nil

	case searchSucceeded:
		if a.seq != s.searchSeq {
			return s
		}
		next.Status = Succeeded
		next.LoadingMore = false
		next.Err = nil
		next.Pagination = a.page.Pagination
		next.HasMore = a.page.Pagination.HasMore()
		if a.loadMore {
			merged := make([]models.Opportunity, 0, len(s.Opportunities)+len(a.page.Opportunities))
			merged = append(merged, s.Opportunities...)
			next.Opportunities = append(merged, a.page.Opportunities...)
			next.Model = s.Model.Clone()
			next.Model.Page = a.page.Pagination.Page
		} else {
			next.Opportunities = append([]models.Opportunity{}, a.page.Opportunities...)
		}

	case searchFailed:
		if a.seq != s.searchSeq {
			return s
		}
		next.Status = Failed
		next.LoadingMore = false
		next.Err = a.err
		if !a.loadMore {
			next.Opportunities = []models.Opportunity{}
			next.HasMore = false
		}

	case suggestStarted:
		next.suggestSeq++

	case suggestionsSet:
		if a.seq != s.suggestSeq {
			return s
		}
		next.Suggestions = append([]models.Suggestion{}, a.list...)

	case savedListLoaded:
		next.SavedSearches = append([]models.SavedSearch{}, a.list...)

	case savedAdded:
		list := make([]models.SavedSearch, 0, len(s.SavedSearches)+1)
		list = append(list, a.saved)
		next.SavedSearches = append(list, s.SavedSearches...)

	case savedRemoved:
		list := make([]models.SavedSearch, 0, len(s.SavedSearches))
		for _, ss := range s.SavedSearches {
			if ss.ID.Hex() != a.id {
				list = append(list, ss)
			}
		}
		next.SavedSearches = list
	}
	return next
}

func shortQuery(q string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(q)) < MinSuggestRunes
}

