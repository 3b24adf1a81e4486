package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/review"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/internal/domain/user"
	"github.com/hugohenrick/agente-atendimento/internal/infrastructure/database"
	"github.com/hugohenrick/agente-atendimento/internal/rag"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

type seedProduct struct {
	name        string
	description string
	category    string
	price       float64
}

type seedFAQ struct {
	question string
	answer   string
}

type seedTenant struct {
	name     string
	kind     tenant.Type
	timezone string
	hours    tenant.BusinessHours
	products []seedProduct
	faqs     []seedFAQ
}

var seedTenants = []seedTenant{
	{
		name:     "La Trattoria Italiana",
		kind:     tenant.TypeRestaurant,
		timezone: "America/Santiago",
		hours: tenant.BusinessHours{
			"monday": "12:00-23:00", "tuesday": "12:00-23:00", "wednesday": "12:00-23:00",
			"thursday": "12:00-23:00", "friday": "12:00-00:00", "saturday": "12:00-00:00",
			"sunday": "12:00-22:00",
		},
		products: []seedProduct{
			{"Pizza Margherita", "Tomate, mozzarella, albahaca", "pizzas", 12000},
			{"Pizza Pepperoni", "Tomate, mozzarella, pepperoni", "pizzas", 13500},
			{"Pasta Carbonara", "Pasta con salsa carbonara", "pastas", 11000},
			{"Lasagna Bolognesa", "Lasagna con carne y bechamel", "pastas", 12500},
			{"Ensalada Caprese", "Tomate, mozzarella, albahaca", "ensaladas", 8500},
			{"Tiramisu", "Postre italiano con café", "postres", 5500},
			{"Panna Cotta", "Postre de crema", "postres", 5000},
			{"Vino Tinto Casa", "Vino de la casa", "bebidas", 15000},
			{"Agua Mineral", "Agua con o sin gas", "bebidas", 2000},
			{"Espresso", "Café italiano", "bebidas", 2500},
		},
		faqs: []seedFAQ{
			{"¿Cuál es el horario de atención?", "Estamos abiertos de lunes a jueves de 12:00 a 23:00, viernes y sábado de 12:00 a 00:00, y domingos de 12:00 a 22:00."},
			{"¿Dónde están ubicados?", "Nos encontramos en Av. Providencia 1234, Santiago."},
			{"¿Qué métodos de pago aceptan?", "Aceptamos efectivo, tarjetas de crédito/débito y transferencias bancarias."},
			{"¿Tienen opciones vegetarianas?", "Sí, tenemos varias opciones vegetarianas como Pizza Margherita, Ensalada Caprese y Risotto ai Funghi."},
			{"¿Hacen delivery?", "Sí, hacemos delivery a través de nuestra plataforma y apps de delivery asociadas."},
			{"¿Aceptan reservas?", "Sí, aceptamos reservas por teléfono o a través de nuestra web para grupos de 4 o más personas."},
		},
	},
	{
		name:     "El Asador Criollo",
		kind:     tenant.TypeRestaurant,
		timezone: "America/Santiago",
		hours: tenant.BusinessHours{
			"monday": "12:00-16:00,19:00-23:00", "tuesday": "12:00-16:00,19:00-23:00",
			"wednesday": "12:00-16:00,19:00-23:00", "thursday": "12:00-16:00,19:00-23:00",
			"friday": "12:00-00:00", "saturday": "12:00-00:00", "sunday": "12:00-23:00",
		},
		products: []seedProduct{
			{"Bife de Chorizo", "Corte argentino 300g", "carnes", 16000},
			{"Asado de Tira", "Costillas 400g", "carnes", 14000},
			{"Entraña", "Corte de entraña 250g", "carnes", 15000},
			{"Choripán", "Chorizo en pan", "sandwiches", 5500},
			{"Empanadas de Carne", "3 unidades", "entradas", 4500},
			{"Ensalada Mixta", "Lechuga, tomate, cebolla", "ensaladas", 4000},
			{"Flan Casero", "Con dulce de leche", "postres", 4500},
			{"Vino Malbec", "Vino argentino", "bebidas", 18000},
			{"Cerveza Artesanal", "500ml", "bebidas", 4500},
			{"Gaseosa", "Coca-Cola, Sprite, Fanta", "bebidas", 2500},
		},
		faqs: []seedFAQ{
			{"¿Cuál es el horario de atención?", "Abrimos de lunes a jueves de 12:00 a 16:00 y de 19:00 a 23:00. Viernes y sábados de 12:00 a 00:00, domingos de 12:00 a 23:00."},
			{"¿Dónde están ubicados?", "Nos encontramos en Bellavista 910, Santiago."},
			{"¿Qué tipo de carnes tienen?", "Tenemos cortes argentinos como bife de chorizo, asado de tira, entraña y más, todos a la parrilla."},
			{"¿Tienen opciones vegetarianas?", "Tenemos ensaladas, provoleta y algunos acompañamientos vegetarianos, pero somos principalmente un asador."},
			{"¿Hacen delivery?", "Sí, hacemos delivery de nuestros platos principales."},
			{"¿Aceptan reservas?", "Sí, recomendamos reservar especialmente los fines de semana."},
		},
	},
	{
		name:     "Panadería Doña Rosa",
		kind:     tenant.TypeBakery,
		timezone: "America/Santiago",
		hours: tenant.BusinessHours{
			"monday": "07:00-20:00", "tuesday": "07:00-20:00", "wednesday": "07:00-20:00",
			"thursday": "07:00-20:00", "friday": "07:00-20:00", "saturday": "07:00-21:00",
			"sunday": "08:00-14:00",
		},
		products: []seedProduct{
			{"Pan Amasado", "Pan tradicional chileno", "panes", 800},
			{"Hallulla", "Pan redondo", "panes", 600},
			{"Marraqueta", "Pan francés", "panes", 500},
			{"Croissant", "Croissant de mantequilla", "pastelería", 1800},
			{"Empanada de Pino", "Carne, cebolla, huevo", "empanadas", 2000},
			{"Empanada de Queso", "Queso derretido", "empanadas", 1800},
			{"Torta de Mil Hojas", "Porción", "tortas", 3500},
			{"Alfajor", "Con manjar", "dulces", 1200},
			{"Café con Leche", "Taza grande", "bebidas", 2000},
			{"Jugo Natural", "Naranja o zanahoria", "bebidas", 2500},
		},
		faqs: []seedFAQ{
			{"¿Cuál es el horario de atención?", "Abrimos de lunes a viernes de 07:00 a 20:00, sábados de 07:00 a 21:00 y domingos de 08:00 a 14:00."},
			{"¿Dónde están ubicados?", "Estamos en Ñuñoa 2345, Santiago."},
			{"¿El pan es del día?", "Sí, todo nuestro pan es horneado diariamente en el local."},
			{"¿Tienen opciones sin gluten?", "Sí, tenemos pan sin gluten que horneamos en días específicos. Consulta disponibilidad."},
			{"¿Hacen tortas por encargo?", "Sí, hacemos tortas personalizadas con 48 horas de anticipación."},
			{"¿Tienen café?", "Sí, servimos café, té y jugos naturales."},
		},
	},
	{
		name:     "MiniMarket Express",
		kind:     tenant.TypeMinimarket,
		timezone: "America/Santiago",
		hours: tenant.BusinessHours{
			"monday": "08:00-23:00", "tuesday": "08:00-23:00", "wednesday": "08:00-23:00",
			"thursday": "08:00-23:00", "friday": "08:00-23:00", "saturday": "08:00-23:00",
			"sunday": "09:00-22:00",
		},
		products: []seedProduct{
			{"Leche Entera 1L", "Leche fresca", "lácteos", 1200},
			{"Pan de Molde", "Pan blanco", "panadería", 1800},
			{"Huevos Docena", "12 unidades", "lácteos", 3500},
			{"Arroz 1kg", "Arroz grado 1", "abarrotes", 1500},
			{"Fideos 500g", "Pasta italiana", "abarrotes", 1200},
			{"Café Instantáneo", "100g", "bebidas", 3500},
			{"Galletas Surtidas", "Paquete 200g", "snacks", 1800},
			{"Cerveza Lata", "355ml", "bebidas", 1200},
			{"Gaseosa 1.5L", "Coca-Cola, Sprite, Fanta", "bebidas", 1800},
			{"Agua Mineral 500ml", "Con o sin gas", "bebidas", 800},
		},
		faqs: []seedFAQ{
			{"¿Cuál es el horario de atención?", "Abrimos de lunes a sábado de 08:00 a 23:00 y domingos de 09:00 a 22:00."},
			{"¿Dónde están ubicados?", "Nos encontramos en Macul 3456, Santiago."},
			{"¿Hacen delivery?", "Sí, hacemos delivery para compras sobre $10.000 en un radio de 2km."},
			{"¿Tienen productos frescos?", "Sí, tenemos lácteos, huevos, pan y algunos vegetales frescos."},
			{"¿Venden alcohol?", "Sí, vendemos cerveza, vino y licores. Se requiere ser mayor de 18 años."},
			{"¿Aceptan devoluciones?", "Sí, aceptamos devoluciones de productos no perecibles con boleta dentro de 7 días."},
		},
	},
}

type seedReview struct {
	rating  int
	comment string
}

var sampleReviews = []seedReview{
	{5, "Excelente atención y comida deliciosa"},
	{5, "Muy buena calidad, volveré pronto"},
	{4, "Buena experiencia, solo un poco de demora"},
	{4, "Rico todo, precios justos"},
	{3, "Normal, nada extraordinario"},
}

type seedUser struct {
	name  string
	email string
	phone string
}

var sampleUsers = []seedUser{
	{"María González", "maria.gonzalez@example.com", "+56911111111"},
	{"Carlos Pérez", "carlos.perez@example.com", "+56922222222"},
	{"Ana Silva", "ana.silva@example.com", ""},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
	}
	defer db.Close()

	appLogger := logger.NewLogger()

	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	ragService := rag.NewService(db, rag.NewHashEmbedder(), appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, st := range seedTenants {
		t, err := tenant.NewTenant(st.name, st.kind, st.timezone, tenant.Config{BusinessHours: st.hours})
		if err != nil {
			log.Fatalf("Erro ao criar tenant %s: %v", st.name, err)
		}
		if err := tenantRepo.Create(ctx, t); err != nil {
			log.Fatalf("Erro ao inserir tenant %s: %v", st.name, err)
		}
		log.Printf("Tenant criado: %s (%s)", t.Name, t.ID)

		for _, sp := range st.products {
			p, err := product.NewProduct(t.ID, sp.name, sp.description, sp.category, sp.price)
			if err != nil {
				log.Fatalf("Erro ao criar produto %s: %v", sp.name, err)
			}
			if err := productRepo.Create(ctx, p); err != nil {
				log.Fatalf("Erro ao inserir produto %s: %v", sp.name, err)
			}
			item := &product.InventoryItem{
				ID:            uuid.New().String(),
				TenantID:      t.ID,
				ProductID:     p.ID,
				StockQuantity: 10 + rng.Intn(91),
				UpdatedAt:     time.Now(),
			}
			if err := productRepo.UpsertInventory(ctx, item); err != nil {
				log.Fatalf("Erro ao inserir estoque de %s: %v", sp.name, err)
			}
			if err := ragService.IndexProduct(ctx, p); err != nil {
				log.Fatalf("Erro ao indexar produto %s: %v", sp.name, err)
			}
		}
		log.Printf("  %d produtos com estoque e embeddings", len(st.products))

		for _, sf := range st.faqs {
			if err := ragService.AddFAQ(ctx, t.ID, sf.question, sf.answer); err != nil {
				log.Fatalf("Erro ao inserir FAQ: %v", err)
			}
		}
		log.Printf("  %d FAQs indexadas", len(st.faqs))

		// conversa de demonstração para ancorar as avaliações de exemplo
		conv := conversation.NewConversation(t.ID, "", "", "web")
		if err := conversationRepo.Create(ctx, conv); err != nil {
			log.Fatalf("Erro ao criar conversa de exemplo: %v", err)
		}
		for _, sr := range sampleReviews {
			r, err := review.NewReview(t.ID, conv.ID, sr.rating, sr.comment, "chat", sr.rating <= 2)
			if err != nil {
				log.Fatalf("Erro ao criar avaliação: %v", err)
			}
			if err := reviewRepo.Create(ctx, r); err != nil {
				log.Fatalf("Erro ao inserir avaliação: %v", err)
			}
		}
		log.Printf("  %d avaliações de exemplo", len(sampleReviews))
	}

	for _, su := range sampleUsers {
		u, err := user.NewUser(su.name, su.email, su.phone)
		if err != nil {
			log.Fatalf("Erro ao criar usuário %s: %v", su.name, err)
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatalf("Erro ao inserir usuário %s: %v", su.name, err)
		}
	}
	log.Printf("%d usuários de demonstração", len(sampleUsers))

	log.Println("Seed concluído com sucesso!")
}
