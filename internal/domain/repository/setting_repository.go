package repository

// SettingRepository define el puerto del almacén clave/valor de configuración.
type SettingRepository interface {
	Get(key string) (string, error)
	// Set hace upsert del valor.
	Set(key, value string) error
	// GetInt devuelve el valor como entero o def si no existe o no parsea.
	GetInt(key string, def int) (int, error)
}
