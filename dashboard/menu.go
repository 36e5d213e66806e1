package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"foodonbus-dashboard/models"
	"foodonbus-dashboard/views"
)

var menuPages = []Page{PageMenu, PageOverview}

func parsePrice(text string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, fmt.Errorf("price %q: %w", text, models.ErrInvalidInput)
	}
	return p, nil
}

// AddMenuItem appends an item with the next free id and no tags. A blank
// name or price aborts silently.
func (d *Dashboard) AddMenuItem(name, price string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	name = strings.TrimSpace(name)
	if name == "" || strings.TrimSpace(price) == "" {
		res.Err = models.ErrUserCancelled
		return d.finish("add_menu_item", res)
	}
	p, err := parsePrice(price)
	if err != nil {
		res.Err = err
		res.notify("Price must be a number")
		return d.finish("add_menu_item", res)
	}
	res.Data = d.opts.Store.AddMenuItem(models.MenuItem{Name: name, Price: p})
	d.refresh(res, menuPages...)
	return d.finish("add_menu_item", res)
}

// EditMenuItem replaces the name and price of an item. Blank fields keep
// their current value.
func (d *Dashboard) EditMenuItem(id int, name, price string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	item, err := d.opts.Store.MenuItem(id)
	if err != nil {
		res.Err = err
		res.notify("Item not found")
		return d.finish("edit_menu_item", res)
	}
	if strings.TrimSpace(price) != "" {
		p, err := parsePrice(price)
		if err != nil {
			res.Err = err
			res.notify("Price must be a number")
			return d.finish("edit_menu_item", res)
		}
		item.Price = p
	}
	if n := strings.TrimSpace(name); n != "" {
		item.Name = n
	}
	if err := d.opts.Store.UpdateMenuItem(item); err != nil {
		res.Err = err
		res.notify("Item not found")
		return d.finish("edit_menu_item", res)
	}
	res.Data = item
	d.refresh(res, menuPages...)
	return d.finish("edit_menu_item", res)
}

// RemoveMenuItem deletes an item once confirmed. A missing id is ignored.
func (d *Dashboard) RemoveMenuItem(id int, c Confirmer) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if !c.Confirm("Remove item?") {
		res.Err = models.ErrUserCancelled
		return d.finish("remove_menu_item", res)
	}
	if err := d.opts.Store.RemoveMenuItem(id); err != nil {
		res.Err = err
		return d.finish("remove_menu_item", res)
	}
	d.refresh(res, menuPages...)
	return d.finish("remove_menu_item", res)
}

// SearchMenu renders the items matching query. The whole menu is filtered
// on every call.
func (d *Dashboard) SearchMenu(query string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	items := FilterMenu(d.opts.Store.MenuItems(), query)
	html, err := d.opts.Renderer.Render(FragmentMenuItems, views.MenuData{Query: query, Items: items})
	if err != nil {
		res.Err = err
		return d.finish("search_menu", res)
	}
	res.Fragments[FragmentMenuItems] = html
	res.Data = items
	return d.finish("search_menu", res)
}

// FilterMenu keeps the items whose name, or tags joined by spaces, contain
// query ignoring case. An empty query keeps everything.
func FilterMenu(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(query)
	out := make([]models.MenuItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(strings.Join(it.Tags, " ")), q) {
			out = append(out, it)
		}
	}
	return out
}
