package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplianceHandler_Identifier(t *testing.T) {
	handler := NewComplianceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/registry/compliance/au/identifiers/abn?value=51824753556", nil)
	req = setChiURLParams(req, map[string]string{"country": "au", "type": "abn"})
	rec := httptest.NewRecorder()

	handler.Identifier(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		Country        string `json:"country"`
		Code           string `json:"code"`
		Name           string `json:"name"`
		FormattedValue string `json:"formattedValue"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "AU", data.Country)
	assert.Equal(t, "ABN", data.Code)
	assert.Equal(t, "Australian Business Number", data.Name)
	assert.Equal(t, "51 824 753 556", data.FormattedValue)
}

func TestComplianceHandler_IdentifierUnknown(t *testing.T) {
	handler := NewComplianceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/registry/compliance/fr/identifiers/siren", nil)
	req = setChiURLParams(req, map[string]string{"country": "fr", "type": "siren"})
	rec := httptest.NewRecorder()

	handler.Identifier(rec, req)

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
}

func TestComplianceHandler_EntityType(t *testing.T) {
	handler := NewComplianceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/registry/compliance/GB/entity-types/PLC", nil)
	req = setChiURLParams(req, map[string]string{"country": "GB", "code": "PLC"})
	rec := httptest.NewRecorder()

	handler.EntityType(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.Equal(t, "Public Limited Company", data.Name)

	req = setChiURLParams(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"country": "GB", "code": "XYZ"})
	rec = httptest.NewRecorder()
	handler.EntityType(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
