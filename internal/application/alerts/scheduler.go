package alerts

import (
	"context"
	"time"

	"github.com/tu-usuario/inventario-planta/internal/domain/entity"
	"github.com/tu-usuario/inventario-planta/internal/domain/repository"
	"github.com/tu-usuario/inventario-planta/pkg/logger"
)

// Scheduler dispara el escaneo de check-outs vencidos periódicamente.
// El umbral (horas) y el intervalo se leen del almacén de configuración en
// cada tick, con valores por defecto si no existen. Los fallos de un escaneo
// en segundo plano se registran y el calendario continúa (best-effort); solo
// las invocaciones manuales propagan el error al caller.
type Scheduler struct {
	uc          *UseCase
	settingRepo repository.SettingRepository
	log         *logger.Logger

	defaultIntervalMinutes int
}

// NewScheduler construye el planificador.
func NewScheduler(uc *UseCase, settingRepo repository.SettingRepository, log *logger.Logger, defaultIntervalMinutes int) *Scheduler {
	if defaultIntervalMinutes <= 0 {
		defaultIntervalMinutes = 1
	}
	return &Scheduler{
		uc:                     uc,
		settingRepo:            settingRepo,
		log:                    log,
		defaultIntervalMinutes: defaultIntervalMinutes,
	}
}

// Run bloquea hasta que ctx se cancele. Ejecuta un escaneo inmediato al
// arrancar y luego uno por intervalo.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.interval()
	s.log.Info().Dur("interval", interval).Msg("planificador de alertas iniciado")

	s.scanOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("planificador de alertas detenido")
			return
		case <-ticker.C:
			s.scanOnce(ctx)
			// El intervalo puede cambiar en caliente vía settings.
			if next := s.interval(); next != interval {
				interval = next
				ticker.Reset(interval)
				s.log.Info().Dur("interval", interval).Msg("intervalo de escaneo actualizado")
			}
		}
	}
}

func (s *Scheduler) scanOnce(ctx context.Context) {
	threshold, err := s.settingRepo.GetInt(entity.SettingOverdueHours, DefaultOverdueHours)
	if err != nil {
		s.log.Warn().Err(err).Msg("leer umbral de vencimiento; usando valor por defecto")
		threshold = DefaultOverdueHours
	}
	created, err := s.uc.ScanOverdueCheckouts(ctx, threshold)
	if err != nil {
		s.log.Error().Err(err).Msg("escaneo de check-outs vencidos falló")
		return
	}
	if created > 0 {
		s.log.Info().Int("alerts_created", created).Int("threshold_hours", threshold).Msg("alertas de vencimiento creadas")
	}
}

func (s *Scheduler) interval() time.Duration {
	minutes, err := s.settingRepo.GetInt(entity.SettingScanIntervalMinutes, s.defaultIntervalMinutes)
	if err != nil || minutes <= 0 {
		minutes = s.defaultIntervalMinutes
	}
	return time.Duration(minutes) * time.Minute
}
