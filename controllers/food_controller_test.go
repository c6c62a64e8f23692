package controllers

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindIngredient(t *testing.T, body string) error {
	t.Helper()
	var in ingredientInput
	return binding.JSON.BindBody([]byte(body), &in)
}

func bindDishTemplate(t *testing.T, body string) error {
	t.Helper()
	var in dishTemplateInput
	return binding.JSON.BindBody([]byte(body), &in)
}

func TestIngredientInputValidation(t *testing.T) {
	require.NoError(t, bindIngredient(t, `{
		"name": "Arroz",
		"kcal_per_100g": 350,
		"protein_g_per_100g": 7,
		"carbs_g_per_100g": 77,
		"fat_g_per_100g": 0.6,
		"serving_size_g": 80
	}`))

	// zero macros are legal (water, spices)
	require.NoError(t, bindIngredient(t, `{"name": "Agua"}`))

	assert.Error(t, bindIngredient(t, `{"name": "X", "kcal_per_100g": -50}`))
	assert.Error(t, bindIngredient(t, `{"name": "X", "protein_g_per_100g": -1}`))
	assert.Error(t, bindIngredient(t, `{"name": "X", "serving_size_g": 0}`))
	assert.Error(t, bindIngredient(t, `{"name": "X", "serving_size_g": -80}`))
}

func TestDishTemplateInputValidation(t *testing.T) {
	id := "6f1af8a4-31fc-4c0e-b33f-1d1f1a2b3c4d"

	require.NoError(t, bindDishTemplate(t, `{
		"name": "Arroz con pollo",
		"items": [{"ingredient_id": "`+id+`", "quantity_g": 150}]
	}`))

	assert.Error(t, bindDishTemplate(t, `{"name": "Vacio", "items": []}`))
	assert.Error(t, bindDishTemplate(t, `{
		"name": "Negativo",
		"items": [{"ingredient_id": "`+id+`", "quantity_g": -100}]
	}`))
	assert.Error(t, bindDishTemplate(t, `{
		"name": "Cero",
		"items": [{"ingredient_id": "`+id+`", "quantity_g": 0}]
	}`))
}
