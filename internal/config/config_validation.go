// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the structural invariants of a resolved configuration map.
//
// The only invariant is that the connection pool can hold a whole batch:
// MAX_POOL_SIZE >= BATCH_SIZE. Both values must be numeric when present. The
// check is skipped when either key is absent.
func validate(values map[string]any) error {
	pool, hasPool := values[KeyMaxPoolSize]
	batch, hasBatch := values[KeyBatchSize]
	if !hasPool || !hasBatch {
		return nil
	}

	poolSize, ok := toFloat(pool)
	if !ok {
		return &ValidationError{
			Field:   KeyMaxPoolSize,
			Message: fmt.Sprintf("must be a number, got %T %v", pool, pool),
		}
	}

	batchSize, ok := toFloat(batch)
	if !ok {
		return &ValidationError{
			Field:   KeyBatchSize,
			Message: fmt.Sprintf("must be a number, got %T %v", batch, batch),
		}
	}

	if poolSize < batchSize {
		return &ValidationError{
			Field:   KeyBatchSize,
			Message: fmt.Sprintf("BATCH_SIZE (%v) cannot exceed MAX_POOL_SIZE (%v)", batch, pool),
		}
	}

	return nil
}
