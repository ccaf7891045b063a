package reference

import (
	"fmt"
	"sort"
	"strings"

	"seismic-api/internal/models"
)

// ColumnLookup maps a coefficient prefix and site class to the value column holding it.
// It is built once from a validated schema and never changes afterward.
type ColumnLookup struct {
	columns map[models.Prefix]map[string]string
}

// NewColumnLookup indexes every "<prefix>_<site class>" column of the schema.
// Each known prefix must carry a Default column.
func NewColumnLookup(columns []string) (*ColumnLookup, error) {
	l := &ColumnLookup{columns: make(map[models.Prefix]map[string]string, len(models.Prefixes))}
	for _, p := range models.Prefixes {
		l.columns[p] = make(map[string]string)
	}

	for _, col := range columns {
		prefix, siteClass, ok := splitValueColumn(col)
		if !ok {
			continue
		}
		l.columns[prefix][siteClass] = col
	}

	for _, p := range models.Prefixes {
		if _, ok := l.columns[p][models.DefaultSiteClass]; !ok {
			return nil, fmt.Errorf("%w: missing fallback column %s_%s", ErrDataLoad, p, models.DefaultSiteClass)
		}
	}

	return l, nil
}

// Resolve returns the dedicated column for the site class, or the prefix's Default column when there is none.
func (l *ColumnLookup) Resolve(prefix models.Prefix, siteClass string) (string, bool) {
	byClass, ok := l.columns[prefix]
	if !ok {
		return "", false
	}
	if col, ok := byClass[siteClass]; ok {
		return col, true
	}
	col, ok := byClass[models.DefaultSiteClass]
	return col, ok
}

// SiteClasses lists the site classes that have a dedicated column for the prefix, sorted.
func (l *ColumnLookup) SiteClasses(prefix models.Prefix) []string {
	classes := make([]string, 0, len(l.columns[prefix]))
	for class := range l.columns[prefix] {
		if class == models.DefaultSiteClass {
			continue
		}
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

func (l *ColumnLookup) isValueColumn(col string) bool {
	_, _, ok := splitValueColumn(col)
	return ok
}

func splitValueColumn(col string) (models.Prefix, string, bool) {
	prefix, siteClass, found := strings.Cut(col, "_")
	if !found || siteClass == "" {
		return "", "", false
	}
	for _, p := range models.Prefixes {
		if models.Prefix(prefix) == p {
			return p, siteClass, true
		}
	}
	return "", "", false
}
