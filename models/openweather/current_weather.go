package openweather

// CurrentWeatherResponse is the subset of GET /weather that we read.
type CurrentWeatherResponse struct {
	Weather []Condition `json:"weather"`
	Main    Main        `json:"main"`
	Wind    Wind        `json:"wind"`
	Name    string      `json:"name"`
	Cod     int         `json:"cod"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

// Wind speed is in m/s with units=metric.
type Wind struct {
	Speed float64 `json:"speed"`
}
