package entity

// Claves de configuración persistida que consume el planificador de alertas.
const (
	SettingOverdueHours        = "alerts.overdue_hours"
	SettingScanIntervalMinutes = "alerts.scan_interval_minutes"
)

// Setting par clave/valor persistido (colaborador de configuración).
type Setting struct {
	Key   string
	Value string
}
