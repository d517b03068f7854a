package service

import "smarthub/internal/models"

// Actuators are the derived on/off states for one reading.
type Actuators struct {
	Fan   bool
	Light bool
}

// Evaluate derives actuator states from the current settings.
//
// The light is on only while now is earlier than both the light-on and the
// light-off time. Comparisons are time-of-day only, so a window that spans
// midnight is not recognised.
func Evaluate(s models.Settings, temperature float64, presence string, now models.TimeOfDay) Actuators {
	present := presence == models.PresenceOn
	return Actuators{
		Fan:   temperature >= s.UserTemp && present,
		Light: now.Before(s.UserLight) && now.Before(s.LightTimeOff) && present,
	}
}
