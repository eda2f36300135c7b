package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/domain"
	"github.com/boxfit/reservas/internal/models"
)

// Reservations books seats in classes. The checks run in a fixed order and
// any failure short-circuits:
//
//	class id > 0 → class exists → box open → no duplicate → seats left → insert
//
// The duplicate check, occupancy count and insert are independent round
// trips with no transaction between them, matching the behaviour of the
// system this replaces.
type Reservations struct {
	db     *gorm.DB
	mailer MailSender
	log    *zap.Logger
	loc    *time.Location
	now    func() time.Time
}

func NewReservations(db *gorm.DB, mailer MailSender, log *zap.Logger, loc *time.Location) *Reservations {
	if loc == nil {
		loc = time.UTC
	}
	return &Reservations{db: db, mailer: mailer, log: log, loc: loc, now: time.Now}
}

// SetClock overrides the time source used for the closed-period rule.
func (s *Reservations) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Reservations) Reserve(user models.User, classID int) (*models.Reservation, error) {
	if classID <= 0 {
		return nil, domain.ErrInvalidClassID
	}

	var class models.Class
	if err := s.db.First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("load class: %w", err)
	}

	// The box is closed all of Friday and Saturday before 18:00; it
	// reopens Sunday afternoon.
	now := s.now().In(s.loc)
	if now.Weekday() == time.Friday || (now.Weekday() == time.Saturday && now.Hour() < 18) {
		return nil, domain.ErrClosedPeriod
	}

	var existing int64
	if err := s.db.Model(&models.Reservation{}).
		Where("user_id = ? AND class_id = ?", user.ID, class.ID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check existing reservation: %w", err)
	}
	if existing > 0 {
		return nil, domain.ErrAlreadyReserved
	}

	var ocupacion int64
	if err := s.db.Model(&models.Reservation{}).
		Where("class_id = ?", class.ID).
		Count(&ocupacion).Error; err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	if ocupacion >= int64(class.CuposMaximos) {
		return nil, domain.ErrClassFull
	}

	res := models.Reservation{UserID: user.ID, ClassID: class.ID}
	if err := s.db.Create(&res).Error; err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	// Fire-and-forget: mail latency or failure never reaches the caller.
	go s.sendConfirmation(user.Email, class)

	return &res, nil
}

func (s *Reservations) sendConfirmation(to string, class models.Class) {
	body := fmt.Sprintf("Has reservado la clase del %s.", class.Horario.In(s.loc).Format("02/01 a las 15:04"))
	if err := s.mailer.Send(to, "Reserva confirmada", body); err != nil {
		s.log.Warn("confirmation mail failed",
			zap.String("to", to),
			zap.Uint("class_id", class.ID),
			zap.Error(err))
	}
}
