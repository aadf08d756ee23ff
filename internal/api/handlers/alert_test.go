package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestStatsScopeGlobal(t *testing.T) {
	scope, err := statsScope(contextWithQuery(""))
	require.NoError(t, err)
	assert.True(t, scope.IsGlobal())
}

func TestStatsScopeUser(t *testing.T) {
	scope, err := statsScope(contextWithQuery("userId=7"))
	require.NoError(t, err)

	id, ok := scope.ByUser()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestStatsScopeVehicle(t *testing.T) {
	scope, err := statsScope(contextWithQuery("vehicleId=3"))
	require.NoError(t, err)

	id, ok := scope.ByVehicle()
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
}

// When both ids are supplied the user filter wins; the scope never carries
// both dimensions.
func TestStatsScopeUserTakesPrecedence(t *testing.T) {
	scope, err := statsScope(contextWithQuery("userId=7&vehicleId=3"))
	require.NoError(t, err)

	_, byUser := scope.ByUser()
	assert.True(t, byUser)
	_, byVehicle := scope.ByVehicle()
	assert.False(t, byVehicle)
}

func TestStatsScopeRejectsNonNumericIDs(t *testing.T) {
	_, err := statsScope(contextWithQuery("userId=abc"))
	assert.Error(t, err)

	_, err = statsScope(contextWithQuery("vehicleId=abc"))
	assert.Error(t, err)
}

func TestPageParamsDefaults(t *testing.T) {
	page, limit, sort := pageParams(contextWithQuery(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
	assert.Empty(t, sort)
}

func TestPageParamsExplicit(t *testing.T) {
	page, limit, sort := pageParams(contextWithQuery("page=4&limit=25&sort=severity:asc"))
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
	assert.Equal(t, "severity:asc", sort)
}

// Garbage numbers parse to zero and are rejected downstream by the query
// resolver rather than silently defaulted.
func TestPageParamsGarbage(t *testing.T) {
	page, limit, _ := pageParams(contextWithQuery("page=abc&limit=xyz"))
	assert.Equal(t, 0, page)
	assert.Equal(t, 0, limit)
}
