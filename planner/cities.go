package planner

import "strings"

// City is a supported trip origin.
type City struct {
	Key  string
	Name string
	Point
}

// Table order matters: substring matches pick the first city listed.
var majorCities = []City{
	{"delhi", "Delhi", Point{28.6139, 77.2090}},
	{"mumbai", "Mumbai", Point{19.0760, 72.8777}},
	{"bangalore", "Bangalore", Point{12.9716, 77.5946}},
	{"chennai", "Chennai", Point{13.0827, 80.2707}},
	{"kolkata", "Kolkata", Point{22.5726, 88.3639}},
	{"hyderabad", "Hyderabad", Point{17.3850, 78.4867}},
	{"ahmedabad", "Ahmedabad", Point{23.0225, 72.5714}},
	{"pune", "Pune", Point{18.5204, 73.8567}},
	{"jaipur", "Jaipur", Point{26.9124, 75.7873}},
	{"lucknow", "Lucknow", Point{26.8467, 80.9462}},
	{"bhopal", "Bhopal", Point{23.2599, 77.4126}},
	{"patna", "Patna", Point{25.5941, 85.1376}},
	{"bhubaneswar", "Bhubaneswar", Point{20.2961, 85.8245}},
	{"thiruvananthapuram", "Thiruvananthapuram", Point{8.5241, 76.9366}},
	{"raipur", "Raipur", Point{21.2514, 81.6296}},
	{"ranchi", "Ranchi", Point{23.3441, 85.3096}},
	{"chandigarh", "Chandigarh", Point{30.7333, 76.7794}},
}

// MajorCities returns the supported origins in table order.
func MajorCities() []City {
	out := make([]City, len(majorCities))
	copy(out, majorCities)
	return out
}

// ResolveSource maps free text such as "New Delhi" to a known city. An exact
// key match wins, otherwise the first city whose key appears in the input.
func ResolveSource(source string) (City, error) {
	key := strings.ToLower(strings.TrimSpace(source))
	if key != "" {
		for _, c := range majorCities {
			if c.Key == key {
				return c, nil
			}
		}
		for _, c := range majorCities {
			if strings.Contains(key, c.Key) {
				return c, nil
			}
		}
	}
	return City{}, &UnknownSourceError{Source: source}
}
