// Package auth содержит бизнес-логику регистрации, входа
// и активации месячного абонемента.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vinhyan/elite-fitness/internal/lib/password"
	"github.com/vinhyan/elite-fitness/internal/lib/rabbitmq"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и для неизвестного пользователя,
// и для неверного пароля: наружу эти случаи не различаются.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUsernameTaken возвращается при попытке занять существующее имя.
var ErrUsernameTaken = errors.New("username already exists")

// ErrUserNotFound возвращается при активации абонемента для неизвестного имени.
var ErrUserNotFound = errors.New("user not found")

// PlanMonthly значение селектора тарифа, активирующее месячный абонемент.
const PlanMonthly = "monthly"

// UserRepository описывает контракт для работы с пользователями и платежами.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя.
	RegisterUser(ctx context.Context, user models.User) error
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// SetSubscribed выставляет флаг месячного абонемента.
	SetSubscribed(ctx context.Context, username string, subscribed bool) error
	// CreatePayment добавляет запись в журнал платежей.
	CreatePayment(ctx context.Context, username string, amount float64, checkoutUID *string) (*models.Payment, error)
}

// ReceiptPublisher публикует квитанции об оплате.
type ReceiptPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует регистрацию, вход и активацию абонемента.
type Service struct {
	repo      UserRepository
	publisher ReceiptPublisher
	planPrice float64
	log       *slog.Logger
}

// New создает новый Service.
func New(repo UserRepository, publisher ReceiptPublisher, planPrice float64, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		planPrice: planPrice,
		log:       log,
	}
}

// Register создает пользователя с bcrypt-хэшем пароля и без абонемента.
// Автоматического входа после регистрации нет.
func (s *Service) Register(ctx context.Context, username, rawPassword string) error {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return err
	}
	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Subscribed:   false,
	}
	if err := s.repo.RegisterUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return err
	}
	s.log.Info("registered new user", slog.String("username", username))
	return nil
}

// Login проверяет пароль пользователя. Неизвестное имя и неверный пароль
// логируются по-разному, но наружу схлопываются в ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("login attempt for unknown user", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.Verify(user.PasswordHash, rawPassword); err != nil {
		s.log.Info("password mismatch", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ActivatePlan обрабатывает шаг подтверждения регистрации: для тарифа
// "monthly" записывает платёж за абонемент и включает флаг подписки,
// для остальных значений селектора просто возвращает пользователя.
func (s *Service) ActivatePlan(ctx context.Context, username, plan string) (*models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if plan != PlanMonthly {
		return user, nil
	}

	payment, err := s.repo.CreatePayment(ctx, username, s.planPrice, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetSubscribed(ctx, username, true); err != nil {
		return nil, err
	}
	user.Subscribed = true
	s.log.Info("monthly plan activated",
		slog.String("username", username), slog.Int("payment_id", payment.ID))

	if err := s.publisher.Publish(rabbitmq.ReceiptsQueue, payment); err != nil {
		s.log.Warn("failed to publish plan receipt", sl.Err(err))
	}
	return user, nil
}
