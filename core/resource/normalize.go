package resource

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/volatiletech/strmangle"

	"github.com/trezcool/masomo-admin/core"
)

// The platform's endpoints disagree on list envelopes. Known conventions,
// tried in order:
//
//	(a) {content, totalElements, totalPages, number, size}  - zero-indexed page
//	(b) {data, meta: {total, page, page_size}}
//	(c) {<plural entity key>, total_count, page}            - e.g. {degrees: [...]}
//	(d) [...]                                               - bare array, one full page
//
// Anything else fails with core.NormalizationError; an unrecognized shape must
// never masquerade as "zero results".
type (
	springEnvelope struct {
		Content       json.RawMessage `json:"content"`
		TotalElements *int            `json:"totalElements"`
		TotalPages    int             `json:"totalPages"`
		Number        int             `json:"number"` // zero-indexed
		Size          int             `json:"size"`
	}

	metaEnvelope struct {
		Data json.RawMessage `json:"data"`
		Meta *struct {
			Total    int `json:"total"`
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
		} `json:"meta"`
	}

	pluralEnvelope struct {
		TotalCount *int `json:"total_count"`
		Page       int  `json:"page"`
	}
)

// Normalize converts a raw list response of unknown shape into the canonical
// 1-indexed Page. entityName is the singular snake_case name used to derive
// the plural key of convention (c). reqPage/reqSize are the requested window,
// used as fallbacks where an envelope omits them.
func Normalize[T Entity](raw json.RawMessage, entityName string, reqPage, reqSize int) (Page[T], error) {
	raw = bytes.TrimSpace(raw)

	// (d) bare array
	if len(raw) > 0 && raw[0] == '[' {
		items, err := decodeItems[T](raw)
		if err != nil {
			return Page[T]{}, err
		}
		size := len(items)
		if size == 0 {
			size = 1
		}
		return Page[T]{
			Items: items,
			Info:  derivePageInfo(1, size, len(items)),
		}, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Page[T]{}, errors.Wrap(err, "decoding list envelope")
	}

	// (a) content/totalElements
	if _, ok := envelope["content"]; ok {
		var env springEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page[T]{}, errors.Wrap(err, "decoding content envelope")
		}
		items, err := decodeItems[T](env.Content)
		if err != nil {
			return Page[T]{}, err
		}
		total := len(items)
		if env.TotalElements != nil {
			total = *env.TotalElements
		}
		size := env.Size
		if size <= 0 {
			size = fallbackSize(reqSize, len(items))
		}
		return Page[T]{
			Items: items,
			Info:  derivePageInfo(env.Number+1, size, total),
		}, nil
	}

	// (b) data/meta
	if _, ok := envelope["data"]; ok {
		var env metaEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page[T]{}, errors.Wrap(err, "decoding data/meta envelope")
		}
		items, err := decodeItems[T](env.Data)
		if err != nil {
			return Page[T]{}, err
		}
		total, page, size := len(items), reqPage, reqSize
		if env.Meta != nil {
			total = env.Meta.Total
			if env.Meta.Page > 0 {
				page = env.Meta.Page
			}
			if env.Meta.PageSize > 0 {
				size = env.Meta.PageSize
			}
		}
		return Page[T]{
			Items: items,
			Info:  derivePageInfo(page, fallbackSize(size, len(items)), total),
		}, nil
	}

	// (c) domain-specific plural key
	pluralKey := strmangle.Plural(entityName)
	if itemsRaw, ok := envelope[pluralKey]; ok {
		var env pluralEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Page[T]{}, errors.Wrapf(err, "decoding %q envelope", pluralKey)
		}
		items, err := decodeItems[T](itemsRaw)
		if err != nil {
			return Page[T]{}, err
		}
		total := len(items)
		if env.TotalCount != nil {
			total = *env.TotalCount
		}
		page := env.Page
		if page <= 0 {
			page = reqPage
		}
		return Page[T]{
			Items: items,
			Info:  derivePageInfo(page, fallbackSize(reqSize, len(items)), total),
		}, nil
	}

	keys := make([]string, 0, len(envelope))
	for k := range envelope {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Page[T]{}, &core.NormalizationError{Shape: keys}
}

func decodeItems[T Entity](raw json.RawMessage) ([]T, error) {
	if len(raw) == 0 {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrap(err, "decoding list items")
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// derivePageInfo enforces the canonical invariant
// totalPages == max(1, ceil(totalItems/pageSize)); an empty collection is one
// empty page, not zero pages, so pagination controls stay stable.
func derivePageInfo(page, size, total int) PageInfo {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	if total < 0 {
		total = 0
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return PageInfo{
		CurrentPage: page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  pages,
	}
}

func fallbackSize(size, itemCount int) int {
	if size > 0 {
		return size
	}
	if itemCount > 0 {
		return itemCount
	}
	return 1
}
