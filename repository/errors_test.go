package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2' for key 'PRIMARY'"}
	require.True(t, isDuplicateKeyError(dup))

	// 包装后仍能识别
	require.True(t, isDuplicateKeyError(fmt.Errorf("failed to insert: %w", dup)))

	require.False(t, isDuplicateKeyError(&mysql.MySQLError{Number: 1045}))
	require.False(t, isDuplicateKeyError(errors.New("connection refused")))
	require.False(t, isDuplicateKeyError(nil))
}
