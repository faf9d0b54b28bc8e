package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

const (
	itemKeyPrefix    = "stock-ledger:item:"
	versionKeyPrefix = "stock-ledger:item-version:"
)

// setIfVersion escribe KEYS[1] solo si KEYS[2] (versión, ausente = 0) sigue valiendo ARGV[1].
var setIfVersion = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

var _ inventory.ItemCache = (*ItemCache)(nil)

// ItemCache caché de agregados por SKU sobre Redis, serializados en JSON, con una versión
// por SKU que se incrementa en cada invalidación.
type ItemCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewItemCache construye la caché. ttl <= 0 usa 5 minutos.
func NewItemCache(client *redis.Client, ttl time.Duration) *ItemCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ItemCache{client: client, ttl: ttl}
}

func itemKey(sku string) string    { return itemKeyPrefix + sku }
func versionKey(sku string) string { return versionKeyPrefix + sku }

// Get devuelve el agregado en acierto o (nil, versión) en fallo de caché.
func (c *ItemCache) Get(ctx context.Context, sku string) (*entity.InventoryItem, int64, error) {
	var itemCmd, versionCmd *redis.StringCmd
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		itemCmd = p.Get(ctx, itemKey(sku))
		versionCmd = p.Get(ctx, versionKey(sku))
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("cache get %s: %w", sku, err)
	}

	version, err := versionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, fmt.Errorf("cache version %s: %w", sku, err)
	}
	raw, err := itemCmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("cache get %s: %w", sku, err)
	}
	var item entity.InventoryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		// Entrada corrupta: se descarta y cuenta como fallo.
		_ = c.client.Del(ctx, itemKey(sku)).Err()
		return nil, version, nil
	}
	return &item, version, nil
}

// Set guarda el agregado con el TTL configurado si nadie invalidó el SKU desde el Get que
// devolvió version.
func (c *ItemCache) Set(ctx context.Context, item *entity.InventoryItem, version int64) (bool, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("cache encode %s: %w", item.SKU, err)
	}
	keys := []string{itemKey(item.SKU), versionKey(item.SKU)}
	stored, err := setIfVersion.Run(ctx, c.client, keys, version, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache set %s: %w", item.SKU, err)
	}
	return stored == 1, nil
}

// Invalidate elimina las entradas y avanza la versión de los SKU indicados.
func (c *ItemCache) Invalidate(ctx context.Context, skus ...string) error {
	if len(skus) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, sku := range skus {
			p.Incr(ctx, versionKey(sku))
			p.Del(ctx, itemKey(sku))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
