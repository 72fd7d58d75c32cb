package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/LilGuiGui/awesome-catering/internal/domain"
	"github.com/LilGuiGui/awesome-catering/internal/errors"
)

const (
	// Admin and phone queries fetch one bounded page and filter in process;
	// single-field filters keep the collection free of compound indexes.
	adminPageSize  = 200
	adminMaxOrders = 100
	phonePageSize  = 50
)

type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

// Save upserts the order keyed by its order id. A retried save with an
// identical payload overwrites in place; createdAt is only set on first
// insert and statusUpdatedAt uses the server clock.
func (r *MongoOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	set := bson.M{
		"items":          order.Items,
		"total":          order.Total,
		"customer":       order.Customer,
		"notes":          order.Notes,
		"paymentStatus":  order.PaymentStatus,
		"trackingStatus": order.TrackingStatus,
		"paymentMethod":  order.PaymentMethod,
		"transactionId":  order.TransactionID,
	}

	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"statusUpdatedAt": true},
		"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": order.OrderID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.NewPersistenceError(fmt.Sprintf("saving order %s", order.OrderID), err)
	}

	return nil
}

func (r *MongoOrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.col.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)

	if err == mongo.ErrNoDocuments {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}
	if err != nil {
		return nil, errors.NewPersistenceError(fmt.Sprintf("querying order %s", orderID), err)
	}

	return &order, nil
}

// UpdateTrackingStatus applies the caller-validated transition. The adapter
// itself does not check reachability from the current status.
func (r *MongoOrderRepository) UpdateTrackingStatus(ctx context.Context, orderID string, status domain.TrackingStatus, notes string) error {
	set := bson.M{"trackingStatus": status}
	if notes != "" {
		set["adminNotes"] = notes
	}

	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"statusUpdatedAt": true},
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return errors.NewPersistenceError(fmt.Sprintf("updating tracking status for %s", orderID), err)
	}
	if result.MatchedCount == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}

	return nil
}

func (r *MongoOrderRepository) UpdatePaymentStatus(ctx context.Context, orderID string, status domain.PaymentStatus, transactionID string) error {
	set := bson.M{"paymentStatus": status}
	if transactionID != "" {
		set["transactionId"] = transactionID
	}

	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"statusUpdatedAt": true},
	}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return errors.NewPersistenceError(fmt.Sprintf("updating payment status for %s", orderID), err)
	}
	if result.MatchedCount == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}

	return nil
}

// ListByPhone returns the customer's non-done orders, newest first. The
// filter on tracking status happens after fetching one page, which can
// under-report at very high volume; the page itself is the newest orders.
func (r *MongoOrderRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(phonePageSize)

	cursor, err := r.col.Find(ctx, bson.M{"customer.phone": phone}, opts)
	if err != nil {
		return nil, errors.NewPersistenceError("querying orders by phone", err)
	}

	orders, err := decodeOrders(ctx, cursor)
	if err != nil {
		return nil, err
	}

	active := orders[:0]
	for _, o := range orders {
		if !o.TrackingStatus.Terminal() {
			active = append(active, o)
		}
	}
	sortByCreatedDesc(active)

	return active, nil
}

// ListActive returns preparing and ready orders for the admin dashboard.
func (r *MongoOrderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.fetchRecentPage(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.TrackingStatus == domain.TrackingPreparing || o.TrackingStatus == domain.TrackingReady {
			active = append(active, o)
			if len(active) >= adminMaxOrders {
				break
			}
		}
	}

	return active, nil
}

func (r *MongoOrderRepository) ListByTrackingStatus(ctx context.Context, status domain.TrackingStatus) ([]domain.Order, error) {
	orders, err := r.fetchRecentPage(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.TrackingStatus == status {
			matched = append(matched, o)
			if len(matched) >= adminMaxOrders {
				break
			}
		}
	}

	return matched, nil
}

func (r *MongoOrderRepository) ListRecent(ctx context.Context) ([]domain.Order, error) {
	orders, err := r.fetchRecentPage(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) > adminMaxOrders {
		orders = orders[:adminMaxOrders]
	}
	return orders, nil
}

func (r *MongoOrderRepository) fetchRecentPage(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(adminPageSize)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.NewPersistenceError("querying recent orders", err)
	}

	return decodeOrders(ctx, cursor)
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]domain.Order, error) {
	defer cursor.Close(ctx)

	var orders []domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.NewPersistenceError("decoding orders", err)
	}
	return orders, nil
}

func sortByCreatedDesc(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
