// Package cart содержит бизнес-логику корзины: добавление занятий
// с фиксацией цены, просмотр с расчётом стоимости, удаление позиций
// и атомарное оформление с серверным пересчётом итога.
package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/lib/billing"
	"github.com/vinhyan/elite-fitness/internal/lib/rabbitmq"
	"github.com/vinhyan/elite-fitness/internal/lib/sl"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/storage/repository"
)

// ErrClassNotFound возвращается при добавлении неизвестного занятия.
var ErrClassNotFound = errors.New("class not found")

// ErrAlreadyBooked возвращается, когда занятие уже есть в корзине:
// повторные позиции по одной паре (пользователь, занятие) не допускаются.
var ErrAlreadyBooked = errors.New("class is already in the cart")

// ErrCartEmpty возвращается при просмотре или оформлении пустой корзины.
var ErrCartEmpty = errors.New("cart is empty")

// ErrLineNotFound возвращается при удалении отсутствующей позиции.
var ErrLineNotFound = errors.New("cart item not found")

// Repository описывает контракт хранилища для операций корзины.
type Repository interface {
	// ListClasses возвращает весь каталог.
	ListClasses(ctx context.Context) ([]models.Class, error)
	// GetClassByID возвращает занятие по идентификатору.
	GetClassByID(ctx context.Context, classID string) (*models.Class, error)
	// CreateCartLine добавляет позицию корзины.
	CreateCartLine(ctx context.Context, line models.CartLine) error
	// ListCartLines возвращает позиции корзины пользователя.
	ListCartLines(ctx context.Context, username string) ([]models.CartLine, error)
	// RemoveCartLine удаляет позицию (username, classID), возвращает число удалённых строк.
	RemoveCartLine(ctx context.Context, username, classID string) (int, error)
	// Checkout атомарно записывает платёж и очищает корзину.
	Checkout(ctx context.Context, username string, amount float64, checkoutUID string) (*models.Payment, int, error)
	// GetPaymentByCheckoutUID возвращает платёж по ключу идемпотентности.
	GetPaymentByCheckoutUID(ctx context.Context, checkoutUID string) (*models.Payment, error)
}

// ReceiptPublisher публикует квитанции об оплате.
type ReceiptPublisher interface {
	Publish(routingKey string, message any) error
}

// Summary корзина для отображения: строки с данными занятий и стоимость.
type Summary struct {
	Items  []models.CartItem `json:"items"`
	Totals billing.Totals    `json:"totals"`
}

// Receipt результат оформления корзины. При повторе запроса с тем же
// ключом идемпотентности разбивка стоимости не восстанавливается:
// Totals равен nil, итоговая сумма — в Payment.Amount.
type Receipt struct {
	Payment      *models.Payment `json:"payment"`
	Totals       *billing.Totals `json:"totals,omitempty"`
	ItemsCleared int             `json:"items_cleared"`
	// Replayed выставляется при повторе запроса с тем же ключом
	// идемпотентности: платёж уже был записан раньше.
	Replayed bool `json:"replayed"`
}

// Service реализует операции с корзиной пользователя.
type Service struct {
	repo      Repository
	publisher ReceiptPublisher
	taxRate   float64
	log       *slog.Logger
}

// New создает новый Service.
func New(repo Repository, publisher ReceiptPublisher, taxRate float64, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		taxRate:   taxRate,
		log:       log,
	}
}

// Add добавляет занятие в корзину, фиксируя его текущую цену, и после
// записи заново вычисляет доступные занятия. Доступность считается по
// свежим чтениям из хранилища, поэтому только что добавленная позиция
// уже исключена из результата.
func (s *Service) Add(ctx context.Context, username, classID string) ([]models.Class, error) {
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, availability.ErrCatalogEmpty
	}

	class, err := s.repo.GetClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	line := models.CartLine{
		Username:   username,
		ClassID:    class.ClassID,
		PriceAtAdd: class.Price,
	}
	if err := s.repo.CreateCartLine(ctx, line); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	s.log.Info("class added to cart",
		slog.String("username", username), slog.String("class_id", classID))

	lines, err := s.repo.ListCartLines(ctx, username)
	if err != nil {
		return nil, err
	}
	return availability.Resolve(classes, lines)
}

// View возвращает корзину пользователя: строки, соединённые с каталогом
// по идентификатору занятия, и стоимость по зафиксированным ценам.
func (s *Service) View(ctx context.Context, username string, subscribed bool) (*Summary, error) {
	lines, err := s.repo.ListCartLines(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, availability.ErrCatalogEmpty
	}

	byID := make(map[string]models.Class, len(classes))
	for _, c := range classes {
		byID[c.ClassID] = c
	}

	items := make([]models.CartItem, 0, len(lines))
	for _, line := range lines {
		class, ok := byID[line.ClassID]
		if !ok {
			// позиция ссылается на занятие, которого больше нет в каталоге
			s.log.Warn("cart line without catalog entry",
				slog.String("username", username), slog.String("class_id", line.ClassID))
			continue
		}
		items = append(items, models.CartItem{
			ClassID:         class.ClassID,
			Name:            class.Name,
			DurationMinutes: class.DurationMinutes,
			PriceAtAdd:      line.PriceAtAdd,
		})
	}

	return &Summary{
		Items:  items,
		Totals: billing.Calculate(lines, subscribed, s.taxRate),
	}, nil
}

// Remove удаляет позицию корзины, ограничивая удаление владельцем,
// и возвращает пересчитанную корзину. Если после удаления корзина
// опустела, возвращается ErrCartEmpty.
func (s *Service) Remove(ctx context.Context, username string, subscribed bool, classID string) (*Summary, error) {
	deleted, err := s.repo.RemoveCartLine(ctx, username, classID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, ErrLineNotFound
	}
	s.log.Info("cart item removed",
		slog.String("username", username), slog.String("class_id", classID))

	return s.View(ctx, username, subscribed)
}

// Checkout оформляет корзину: итог пересчитывается на сервере по
// сохранённым позициям и флагу абонемента, платёж и очистка корзины
// выполняются в одной транзакции. attemptID — ключ идемпотентности:
// повтор запроса с тем же ключом возвращает уже записанный платёж.
func (s *Service) Checkout(ctx context.Context, username string, subscribed bool, attemptID string) (*Receipt, error) {
	if payment, err := s.repo.GetPaymentByCheckoutUID(ctx, attemptID); err == nil {
		s.log.Info("checkout replayed",
			slog.String("username", username), slog.String("checkout_uid", attemptID))
		return &Receipt{Payment: payment, Replayed: true}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	lines, err := s.repo.ListCartLines(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	totals := billing.Calculate(lines, subscribed, s.taxRate).Rounded()

	payment, deleted, err := s.repo.Checkout(ctx, username, totals.Total, attemptID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			// параллельный повтор успел записать платёж первым
			payment, err := s.repo.GetPaymentByCheckoutUID(ctx, attemptID)
			if err != nil {
				return nil, err
			}
			return &Receipt{Payment: payment, Replayed: true}, nil
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCartEmpty
		default:
			return nil, err
		}
	}
	s.log.Info("checkout complete", slog.String("username", username),
		slog.Int("payment_id", payment.ID), slog.Int("items_cleared", deleted))

	receipt := &Receipt{Payment: payment, Totals: &totals, ItemsCleared: deleted}
	if err := s.publisher.Publish(rabbitmq.ReceiptsQueue, payment); err != nil {
		s.log.Warn("failed to publish checkout receipt", sl.Err(err))
	}
	return receipt, nil
}
