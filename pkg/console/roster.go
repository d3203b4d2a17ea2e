package console

import (
	"context"
	"strconv"
	"sync"
)

// AdminRoster caches the list of Telegram ids allowed to administer the
// bot. Mutations follow the same discipline as the schedule repository:
// await the round trip, then reload the full list from the server.
type AdminRoster struct {
	transport *Transport

	mu  sync.Mutex
	ids []int64
}

func NewAdminRoster(transport *Transport) *AdminRoster {
	return &AdminRoster{transport: transport}
}

// AdminIDs returns a copy of the cached roster.
func (r *AdminRoster) AdminIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.ids...)
}

// LoadAdminIDs refreshes the roster cache from the server.
func (r *AdminRoster) LoadAdminIDs(ctx context.Context) ([]int64, error) {
	var payload struct {
		AdminIDs []int64 `json:"admin_ids"`
	}
	if err := r.transport.get(ctx, "/api/admin/settings/admin_ids", &payload); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.ids = payload.AdminIDs
	r.mu.Unlock()
	return append([]int64(nil), payload.AdminIDs...), nil
}

// AddAdminID grants admin rights to one Telegram id, then reloads the
// roster. A zero id fails locally before any request is issued.
func (r *AdminRoster) AddAdminID(ctx context.Context, id int64) error {
	if id == 0 {
		return validationError("admin id is required")
	}

	body := struct {
		AdminID int64 `json:"admin_id"`
	}{AdminID: id}
	if err := r.transport.post(ctx, "/api/admin/settings/admin_ids", body, nil); err != nil {
		return err
	}

	_, err := r.LoadAdminIDs(ctx)
	return err
}

// RemoveAdminID revokes admin rights for one Telegram id, then reloads the
// roster. The server treats a non-member id as a no-op, so the reload is
// still the authoritative outcome.
func (r *AdminRoster) RemoveAdminID(ctx context.Context, id int64) error {
	if id == 0 {
		return validationError("admin id is required")
	}

	if err := r.transport.delete(ctx, "/api/admin/settings/admin_ids/"+strconv.FormatInt(id, 10)); err != nil {
		return err
	}

	_, err := r.LoadAdminIDs(ctx)
	return err
}
