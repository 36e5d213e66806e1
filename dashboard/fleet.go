package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"foodonbus-dashboard/mapsim"
	"foodonbus-dashboard/models"
)

const (
	DefaultSeats = 36

	newDriverLat = 19.2
	newDriverLng = 72.9
	newBusLat    = 19.0
	newBusLng    = 72.9
)

var (
	driverPages = []Page{PageDrivers, PageOverview, PageAnalytics, PageMap}
	busPages    = []Page{PageBuses, PageOverview, PageMap}
)

// Tracking is the outcome of TrackDriver. Stored is where the registry has
// the driver; Live is the simulated marker, when the map knows the driver.
type Tracking struct {
	DriverID int            `json:"driver_id"`
	Lat      float64        `json:"lat"`
	Lng      float64        `json:"lng"`
	Zoom     int            `json:"zoom"`
	Live     *mapsim.Marker `json:"live,omitempty"`
}

// AddDriver registers a driver at the default position. A blank name aborts
// silently.
func (d *Dashboard) AddDriver(name, phone, bus string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	name = strings.TrimSpace(name)
	if name == "" {
		res.Err = models.ErrUserCancelled
		return d.finish("add_driver", res)
	}
	drv, err := d.opts.Store.AddDriver(models.Driver{
		Name:  name,
		Phone: strings.TrimSpace(phone),
		Bus:   strings.TrimSpace(bus),
		Lat:   newDriverLat,
		Lng:   newDriverLng,
	})
	if err != nil {
		res.Err = err
		return d.finish("add_driver", res)
	}
	d.opts.Simulator.Place(mapsim.DriverMarker(drv))
	res.Data = drv
	d.refresh(res, driverPages...)
	return d.finish("add_driver", res)
}

func (d *Dashboard) RemoveDriver(id int, c Confirmer) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	drv, err := d.opts.Store.Driver(id)
	if err != nil {
		res.Err = err
		res.notify("Driver not found")
		return d.finish("remove_driver", res)
	}
	if !c.Confirm(fmt.Sprintf("Remove driver %s?", drv.Name)) {
		res.Err = models.ErrUserCancelled
		return d.finish("remove_driver", res)
	}
	if err := d.opts.Store.RemoveDriver(id); err != nil {
		res.Err = err
		return d.finish("remove_driver", res)
	}
	d.opts.Simulator.Remove(mapsim.DriverMarkerID(id))
	d.refresh(res, driverPages...)
	return d.finish("remove_driver", res)
}

func (d *Dashboard) CallDriver(id int) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	drv, err := d.opts.Store.Driver(id)
	if err != nil {
		res.Err = err
		res.notify("Driver not found")
		return d.finish("call_driver", res)
	}
	res.notify("Simulated call to " + drv.Phone)
	return d.finish("call_driver", res)
}

// TrackDriver switches to the live map centred on the driver's registered
// position.
func (d *Dashboard) TrackDriver(id int) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	drv, err := d.opts.Store.Driver(id)
	if err != nil {
		res.Err = err
		res.notify("Driver not found")
		return d.finish("track_driver", res)
	}
	res.notify(fmt.Sprintf("Open Live Map and look for driver near lat:%.3f lng:%.3f", drv.Lat, drv.Lng))

	d.active = PageMap
	res.Page = PageMap
	d.startMap()
	d.opts.Simulator.SetView(drv.Lat, drv.Lng, d.opts.TrackZoom)

	tr := Tracking{DriverID: drv.ID, Lat: drv.Lat, Lng: drv.Lng, Zoom: d.opts.TrackZoom}
	if m, ok := d.opts.Simulator.Marker(mapsim.DriverMarkerID(drv.ID)); ok {
		tr.Live = &m
	}
	res.Data = tr
	d.refresh(res, PageMap)
	return d.finish("track_driver", res)
}

// AddBus registers a bus at the default position. A blank number aborts
// silently; seats fall back to DefaultSeats when blank or not a positive
// number.
func (d *Dashboard) AddBus(number, route, seats string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	number = strings.TrimSpace(number)
	if number == "" {
		res.Err = models.ErrUserCancelled
		return d.finish("add_bus", res)
	}
	n, err := strconv.Atoi(strings.TrimSpace(seats))
	if err != nil || n <= 0 {
		n = DefaultSeats
	}
	bus := models.Bus{Number: number, Route: strings.TrimSpace(route), Seats: n, Lat: newBusLat, Lng: newBusLng}
	if err := d.opts.Store.AddBus(bus); err != nil {
		res.Err = err
		if errors.Is(err, models.ErrDuplicate) {
			res.notify("Bus already exists")
		}
		return d.finish("add_bus", res)
	}
	d.opts.Simulator.Place(mapsim.BusMarker(bus))
	res.Data = bus
	d.refresh(res, busPages...)
	return d.finish("add_bus", res)
}

func (d *Dashboard) ViewBus(number string) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	bus, err := d.opts.Store.Bus(number)
	if err != nil {
		res.Err = err
		res.notify("Bus not found")
		return d.finish("view_bus", res)
	}
	res.notify(fmt.Sprintf("Bus: %s\nRoute: %s\nSeats: %d", bus.Number, bus.Route, bus.Seats))
	res.Data = bus
	return d.finish("view_bus", res)
}

// RemoveBus deletes a bus once confirmed. A missing number is ignored.
func (d *Dashboard) RemoveBus(number string, c Confirmer) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.newResult()
	if !c.Confirm(fmt.Sprintf("Remove bus %s?", number)) {
		res.Err = models.ErrUserCancelled
		return d.finish("remove_bus", res)
	}
	if err := d.opts.Store.RemoveBus(number); err != nil {
		res.Err = err
		return d.finish("remove_bus", res)
	}
	d.opts.Simulator.Remove(mapsim.BusMarkerID(number))
	d.refresh(res, busPages...)
	return d.finish("remove_bus", res)
}
