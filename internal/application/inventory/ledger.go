package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// AppendMovement valida el movimiento, le asigna la siguiente secuencia y lo inserta en el libro.
// Debe llamarse dentro de TxRunner.Run: la secuencia queda reservada hasta el commit y se
// libera si la transacción hace rollback.
func AppendMovement(ctx context.Context, movements repository.StockMovementRepository, mov *entity.StockMovement) error {
	if err := inventory.ValidateMovement(mov); err != nil {
		return err
	}
	seq, err := movements.NextSequence(ctx)
	if err != nil {
		return fmt.Errorf("reserve movement sequence: %w", err)
	}
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	mov.Sequence = seq
	mov.MovementID = entity.FormatMovementID(seq)
	if err := movements.Create(ctx, mov); err != nil {
		return fmt.Errorf("append movement %s: %w", mov.MovementID, err)
	}
	return nil
}
