package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	AdvertisementKeyPrefix = "advertisement:%d"
	ProductKeyPrefix       = "product:%d"
	GoalsKeyPrefix         = "advertisement:%d:goals"

	PublicAdvertisementsKey = "advertisements:public"
	PublicProductsKey       = "products:public"
)

const (
	UserTTL    = 5 * time.Minute
	ListingTTL = 10 * time.Minute
	// PublicListTTL is short: the public pages are the hottest and the
	// staleness window after a write should stay small.
	PublicListTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func AdvertisementKey(adID uint) string {
	return fmt.Sprintf(AdvertisementKeyPrefix, adID)
}

func ProductKey(productID uint) string {
	return fmt.Sprintf(ProductKeyPrefix, productID)
}

func GoalsKey(adID uint) string {
	return fmt.Sprintf(GoalsKeyPrefix, adID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateAdvertisement(ctx context.Context, adID uint) {
	Invalidate(ctx, AdvertisementKey(adID))
	Invalidate(ctx, GoalsKey(adID))
	Invalidate(ctx, PublicAdvertisementsKey)
}

func InvalidateProduct(ctx context.Context, productID uint) {
	Invalidate(ctx, ProductKey(productID))
	Invalidate(ctx, PublicProductsKey)
}
