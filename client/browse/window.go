package browse

// PageItem is one slot in a rendered pagination control. Ellipsis items
// stand in for a run of hidden page numbers.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// Window lays out page numbers for a pager: always the first and last
// page, the current page with one neighbour either side, and ellipses
// covering the gaps. A single page needs no pager and yields nothing.
func Window(current, total int) []PageItem {
	return window(current, total, 1)
}

// WindowNarrow is Window without the current page's neighbours, for
// compact layouts.
func WindowNarrow(current, total int) []PageItem {
	return window(current, total, 0)
}

// PrevEnabled reports whether a previous page exists.
func PrevEnabled(current int) bool {
	return current > 1
}

// NextEnabled reports whether a next page exists.
func NextEnabled(current, total int) bool {
	return current < total
}

func window(current, total, neighbours int) []PageItem {
	if total <= 1 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	shown := make(map[int]bool)
	shown[1] = true
	shown[total] = true
	for page := current - neighbours; page <= current+neighbours; page++ {
		if page >= 1 && page <= total {
			shown[page] = true
		}
	}

	items := make([]PageItem, 0, len(shown)+2)
	previous := 0
	for page := 1; page <= total; page++ {
		if !shown[page] {
			continue
		}
		if previous != 0 && page-previous > 1 {
			items = append(items, PageItem{Ellipsis: true})
		}
		items = append(items, PageItem{Page: page})
		previous = page
	}
	return items
}
