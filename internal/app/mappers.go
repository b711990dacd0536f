package app

import (
	"errors"
	"strconv"
	"strings"

	"hotels_api/internal/domain"
)

/********** alias registries **********/

var hotelAliases = map[string][]string{
	"name":  {"hotel_name", "name", "translations.name"},
	"image": {"main_image_th", "main_image", "thumbnail", "image"},
}

var roomAliases = map[string][]string{
	"name":     {"room_name", "name", "title"},
	"capacity": {"max_occupancy", "capacity", "occupancy.max", "max_adults"},
}

var errNoName = errors.New("property has no name")

/********** helpers **********/

// lookupAny walks dot paths through nested maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = obj[part]; !ok {
			return nil
		}
	}
	return cur
}

func firstString(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstInt accepts JSON numbers and numeric strings.
func firstInt(m map[string]any, paths ...string) (int, bool) {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// firstPhoto returns the first photo URL, preferring the one flagged as main.
func firstPhoto(m map[string]any) string {
	raw, _ := lookupAny(m, "photos").([]any)
	var fallback string
	for _, it := range raw {
		switch t := it.(type) {
		case string:
			if fallback == "" {
				fallback = t
			}
		case map[string]any:
			u := firstString(t, "url", "src")
			if u == "" {
				continue
			}
			if main, _ := t["main_photo"].(bool); main {
				return u
			}
			if fallback == "" {
				fallback = u
			}
		}
	}
	return fallback
}

/********** property mapper **********/

func mapProperty(id int64, p map[string]any) (domain.HotelWithRooms, error) {
	name := firstString(p, hotelAliases["name"]...)
	if name == "" {
		return domain.HotelWithRooms{}, errNoName
	}
	image := firstString(p, hotelAliases["image"]...)
	if image == "" {
		image = firstPhoto(p)
	}

	out := domain.HotelWithRooms{
		Hotel: domain.Hotel{ID: id, Name: name, Image: image},
		Rooms: []domain.Room{},
	}
	rooms, _ := lookupAny(p, "rooms").([]any)
	for _, it := range rooms {
		r, ok := it.(map[string]any)
		if !ok {
			continue
		}
		rn := firstString(r, roomAliases["name"]...)
		if rn == "" {
			continue
		}
		capacity, _ := firstInt(r, roomAliases["capacity"]...)
		if capacity < 0 {
			capacity = 0
		}
		out.Rooms = append(out.Rooms, domain.Room{Name: rn, Capacity: capacity, HotelID: id})
	}
	return out, nil
}
