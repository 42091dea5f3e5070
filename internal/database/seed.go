package database

import (
	"context"
	"log/slog"

	catalogapp "github.com/tablebistro/tablebistro/internal/catalog/application"
	catalogdomain "github.com/tablebistro/tablebistro/internal/catalog/domain"
	"github.com/tablebistro/tablebistro/internal/shared"
	tablesapp "github.com/tablebistro/tablebistro/internal/tables/application"
	tablesdomain "github.com/tablebistro/tablebistro/internal/tables/domain"
)

const seededTableCount = 7

type seedProduct struct {
	name        string
	description string
	price       string
	allergens   []string
}

var seedMenu = []struct {
	category    string
	description string
	products    []seedProduct
}{
	{
		category: "Bebidas", description: "Vinos de la casa y bebidas",
		products: []seedProduct{
			{name: "Vino Tinto de la Casa", description: "Vino tinto del norte de Tenerife", price: "1.50"},
			{name: "Vino Blanco de la Casa", description: "Vino blanco afrutado", price: "1.50"},
			{name: "Vino Rosado", description: "Vino rosado fresco", price: "1.50"},
			{name: "Agua", description: "Agua mineral", price: "1.00"},
			{name: "Refresco", description: "Coca-Cola, Fanta, Sprite", price: "1.50"},
			{name: "Cerveza Dorada", description: "Cerveza canaria", price: "2.00"},
			{name: "Tropical", description: "Cerveza canaria", price: "2.00"},
		},
	},
	{
		category: "Entrantes", description: "Para abrir boca",
		products: []seedProduct{
			{name: "Papas Arrugadas con Mojo", description: "Papas con mojo picón y mojo verde", price: "4.50"},
			{name: "Queso Asado", description: "Queso de cabra asado con mojo", price: "6.00", allergens: []string{"lactosa"}},
			{name: "Pimientos de Padrón", description: "Pimientos fritos con sal gorda", price: "5.00"},
			{name: "Chicharrones", description: "Chicharrones caseros", price: "5.50"},
			{name: "Chorizo a la Brasa", description: "Chorizo canario a la brasa", price: "6.50"},
			{name: "Champiñones al Ajillo", description: "Champiñones salteados con ajo", price: "5.50"},
		},
	},
	{
		category: "Carnes a la Brasa", description: "Nuestras especialidades a la parrilla",
		products: []seedProduct{
			{name: "Chuletas de Cerdo", description: "Chuletas de cerdo a la brasa con papas y ensalada", price: "9.50"},
			{name: "Costillas", description: "Costillas de cerdo a la brasa", price: "10.50"},
			{name: "Pollo al Horno", description: "Medio pollo al horno con papas", price: "8.50"},
			{name: "Conejo al Salmorejo", description: "Conejo marinado en salmorejo canario", price: "11.00"},
			{name: "Carne de Cabra", description: "Carne de cabra guisada", price: "10.50"},
			{name: "Entrecot", description: "Entrecot de ternera a la brasa", price: "14.00"},
		},
	},
	{
		category: "Pescados", description: "Pescado fresco del día",
		products: []seedProduct{
			{name: "Cherne a la Plancha", description: "Cherne fresco con papas arrugadas", price: "13.00", allergens: []string{"pescado"}},
			{name: "Vieja Saneada", description: "Vieja a la plancha", price: "12.00", allergens: []string{"pescado"}},
			{name: "Sama a la Plancha", description: "Sama fresca con guarnición", price: "13.50", allergens: []string{"pescado"}},
			{name: "Pulpo a la Gallega", description: "Pulpo con papas y pimentón", price: "14.00", allergens: []string{"moluscos"}},
			{name: "Calamares Fritos", description: "Calamares rebozados", price: "9.00", allergens: []string{"moluscos", "gluten"}},
		},
	},
	{
		category: "Guisos Canarios", description: "Potajes y guisos tradicionales",
		products: []seedProduct{
			{name: "Ropa Vieja", description: "Guiso de garbanzos con carne", price: "8.50"},
			{name: "Potaje de Berros", description: "Potaje canario con berros y costilla", price: "7.50"},
			{name: "Puchero Canario", description: "Puchero con verduras y carnes", price: "8.00"},
			{name: "Rancho Canario", description: "Rancho con fideos y papas", price: "7.00", allergens: []string{"gluten"}},
		},
	},
	{
		category: "Postres", description: "Postres caseros",
		products: []seedProduct{
			{name: "Quesillo", description: "Flan canario casero", price: "3.50", allergens: []string{"lactosa", "huevo"}},
			{name: "Bienmesabe", description: "Postre de almendras típico canario", price: "4.00", allergens: []string{"frutos secos", "huevo"}},
			{name: "Frangollo", description: "Postre de gofio con leche", price: "3.50", allergens: []string{"lactosa", "gluten"}},
			{name: "Príncipe Alberto", description: "Bizcocho con almendras y chocolate", price: "4.00", allergens: []string{"gluten", "lactosa", "huevo", "frutos secos"}},
			{name: "Helado de la Casa", description: "Helado artesanal", price: "3.00", allergens: []string{"lactosa"}},
		},
	},
	{
		category: "Cafés", description: "Café y bebidas calientes",
		products: []seedProduct{
			{name: "Café Solo", description: "Café expreso", price: "1.20"},
			{name: "Cortado", description: "Café cortado", price: "1.30", allergens: []string{"lactosa"}},
			{name: "Café con Leche", description: "Café con leche", price: "1.40", allergens: []string{"lactosa"}},
			{name: "Barraquito", description: "Café canario con leche condensada y licor", price: "2.00", allergens: []string{"lactosa"}},
		},
	},
}

// Seeder loads the table roster and the house menu on first start.
type Seeder struct {
	log        *slog.Logger
	tables     tablesapp.TableRepository
	categories catalogapp.CategoryRepository
	products   catalogapp.ProductRepository
}

func NewSeeder(log *slog.Logger, tables tablesapp.TableRepository, categories catalogapp.CategoryRepository, products catalogapp.ProductRepository) *Seeder {
	return &Seeder{log: log, tables: tables, categories: categories, products: products}
}

func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.categories.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		s.log.Info("seed data already present, skipping")
		return nil
	}

	for n := 1; n <= seededTableCount; n++ {
		id, err := tablesdomain.NewTableID(n)
		if err != nil {
			return err
		}
		if err := s.tables.Save(ctx, tablesdomain.NewTable(id)); err != nil {
			return err
		}
	}

	for _, entry := range seedMenu {
		category, err := catalogdomain.NewCategory(entry.category, entry.description)
		if err != nil {
			return err
		}
		if err := s.categories.Save(ctx, category); err != nil {
			return err
		}
		for _, sp := range entry.products {
			price, err := shared.NewPriceFromString(sp.price, "EUR")
			if err != nil {
				return err
			}
			product, err := catalogdomain.NewProduct(sp.name, sp.description, price, category.ID(), shared.NewAllergens(sp.allergens))
			if err != nil {
				return err
			}
			if err := s.products.Save(ctx, product); err != nil {
				return err
			}
		}
	}

	s.log.Info("seed completed", "tables", seededTableCount, "categories", len(seedMenu))
	return nil
}
