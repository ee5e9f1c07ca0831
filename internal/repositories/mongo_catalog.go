package repositories

import (
	"context"
	"time"

	"golang-storefront-backend/internal/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCatalogRepository struct {
	restaurants *mongo.Collection
	menuItems   *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepository{
		restaurants: db.Collection("restaurants"),
		menuItems:   db.Collection("menu_items"),
	}
}

func (r *mongoCatalogRepository) UpsertRestaurant(ctx context.Context, restaurant *models.Restaurant) error {
	restaurant.SyncedAt = time.Now()

	filter := bson.M{"restaurant_id": restaurant.RestaurantID}
	update := bson.M{"$set": restaurant}
	opts := options.Update().SetUpsert(true)

	_, err := r.restaurants.UpdateOne(ctx, filter, update, opts)
	return errors.Wrap(err, "upsert restaurant")
}

func (r *mongoCatalogRepository) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&restaurant)
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *mongoCatalogRepository) ListRestaurants(ctx context.Context, limit, offset int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.restaurants.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}

	return restaurants, nil
}

func (r *mongoCatalogRepository) UpsertMenuItem(ctx context.Context, item *models.MenuItem) error {
	item.SyncedAt = time.Now()

	filter := bson.M{"product_id": item.ProductID}
	update := bson.M{"$set": item}
	opts := options.Update().SetUpsert(true)

	_, err := r.menuItems.UpdateOne(ctx, filter, update, opts)
	return errors.Wrap(err, "upsert menu item")
}

func (r *mongoCatalogRepository) GetMenuItem(ctx context.Context, productID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.menuItems.FindOne(ctx, bson.M{"product_id": productID}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *mongoCatalogRepository) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var items []models.MenuItem

	filter := bson.M{"restaurant_id": restaurantID}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.menuItems.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}
