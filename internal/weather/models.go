package weather

// Conditions is the normalized current-conditions record produced by one
// successful fetch. Every field carries the provider's raw value as text.
type Conditions struct {
	TemperatureC  string `json:"temperatureC"`
	WindSpeed     string `json:"windSpeed"`
	WindDirection string `json:"windDirection"`
	Pressure      string `json:"pressure"`
	ConditionName string `json:"conditionName"`
	IsDaytime     string `json:"isDaytime"`
	LocationLabel string `json:"locationLabel"`
	ConditionCode string `json:"conditionCode"`
}

// Daytime reports whether the provider flagged the observation as daytime.
func (c Conditions) Daytime() bool {
	return c.IsDaytime == "yes"
}

// RGBA is a color with 8-bit channels and a fractional alpha.
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// Palette is the pair of colors for the vertical background gradient.
type Palette struct {
	Top    RGBA `json:"top"`
	Bottom RGBA `json:"bottom"`
}
