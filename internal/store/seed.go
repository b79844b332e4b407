// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/olegiv/psyhelp/internal/kv"
	"github.com/olegiv/psyhelp/internal/model"
)

// Default seeded credentials.
const (
	DefaultAdminLogin    = "admin"
	DefaultAdminPassword = "admin"
	DefaultUserLogin     = "user"
	DefaultUserPassword  = "user123"
)

// Initialize seeds the store on first run. Each collection is seeded only if
// its key is absent, and the db_initialized flag makes later calls no-ops.
func (d *Database) Initialize(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	initialized, err := d.kv.Has(ctx, kv.KeyDBInitialized)
	if err != nil {
		return fmt.Errorf("checking init flag: %w", err)
	}
	if initialized {
		d.logger.Debug("database already initialized, skipping seed")
		return nil
	}

	now := d.now()
	seeds := []struct {
		key  string
		seed func(context.Context) error
	}{
		{kv.KeyUsers, func(ctx context.Context) error {
			return saveCollection(ctx, d.kv, kv.KeyUsers, seedUsers(now))
		}},
		{kv.KeyCategories, func(ctx context.Context) error {
			return saveCollection(ctx, d.kv, kv.KeyCategories, seedCategories())
		}},
		{kv.KeyRequests, func(ctx context.Context) error {
			return saveCollection(ctx, d.kv, kv.KeyRequests, seedRequests())
		}},
		{kv.KeyNews, func(ctx context.Context) error {
			return saveCollection(ctx, d.kv, kv.KeyNews, seedNews())
		}},
		{kv.KeyVisitorCount, func(ctx context.Context) error {
			return d.kv.Set(ctx, kv.KeyVisitorCount, []byte(strconv.Itoa(DefaultVisitorCount)))
		}},
	}

	for _, s := range seeds {
		exists, err := d.kv.Has(ctx, s.key)
		if err != nil {
			return fmt.Errorf("checking %s: %w", s.key, err)
		}
		if exists {
			continue
		}
		if err := s.seed(ctx); err != nil {
			return fmt.Errorf("seeding %s: %w", s.key, err)
		}
		d.logger.Info("seeded collection", "key", s.key)
	}

	if err := d.kv.Set(ctx, kv.KeyDBInitialized, []byte("true")); err != nil {
		return fmt.Errorf("setting init flag: %w", err)
	}
	return nil
}

func seedUsers(now time.Time) []model.User {
	return []model.User{
		{
			ID:               1,
			FullName:         "Администратор",
			Login:            DefaultAdminLogin,
			Email:            "admin@psychology-help.ru",
			Password:         DefaultAdminPassword,
			Role:             model.RoleAdmin,
			RegistrationDate: now,
		},
		{
			ID:               2,
			FullName:         "Иванов Иван Иванович",
			Login:            DefaultUserLogin,
			Email:            "user@example.ru",
			Password:         DefaultUserPassword,
			Role:             model.RoleUser,
			RegistrationDate: now,
		},
	}
}

func seedCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Тревожность и стресс"},
		{ID: 2, Name: "Депрессия"},
		{ID: 3, Name: "Отношения и семья"},
		{ID: 4, Name: "Самооценка и уверенность"},
		{ID: 5, Name: "Карьера и профессиональное развитие"},
		{ID: 6, Name: "Травмы и кризисы"},
	}
}

func seedRequests() []model.Request {
	solvedAt := time.Date(2023, 10, 5, 14, 20, 0, 0, time.UTC)
	return []model.Request{
		{
			ID:          1,
			UserID:      2,
			Title:       "Помощь с тревожностью",
			Description: "Испытываю постоянную тревогу без видимых причин",
			CategoryID:  1,
			Status:      model.StatusSolved,
			CreatedAt:   time.Date(2023, 10, 1, 10, 30, 0, 0, time.UTC),
			SolvedAt:    &solvedAt,
		},
		{
			ID:          2,
			UserID:      2,
			Title:       "Проблемы в отношениях",
			Description: "Частые конфликты с партнером",
			CategoryID:  3,
			Status:      model.StatusNew,
			CreatedAt:   time.Date(2023, 10, 12, 15, 45, 0, 0, time.UTC),
		},
	}
}

func seedNews() []model.News {
	return []model.News{
		{
			ID:       1,
			Title:    "Новый групповой тренинг по управлению стрессом",
			Category: "Тренинги",
			Content:  "Приглашаем всех желающих на наш новый тренинг по управлению стрессом. Тренинг пройдет в онлайн-формате.",
			Image:    "images/news-1.jpg",
			Date:     "2023-10-15",
		},
		{
			ID:       2,
			Title:    "Введение новой услуги: семейная психология онлайн",
			Category: "Услуги",
			Content:  "Теперь вы можете получить профессиональную помощь семейного психолога не выходя из дома.",
			Image:    "images/news-2.jpg",
			Date:     "2023-10-10",
		},
		{
			ID:       3,
			Title:    "Бесплатный вебинар: \"Как справиться с тревогой\"",
			Category: "Мероприятия",
			Content:  "Приглашаем на бесплатный вебинар с нашим ведущим психологом. Регистрация обязательна.",
			Image:    "images/news-3.jpg",
			Date:     "2023-10-05",
		},
		{
			ID:       4,
			Title:    "Отзыв клиента: \"Как психология помогла мне найти себя\"",
			Category: "Отзывы",
			Content:  "История успеха нашего клиента, который смог преодолеть кризис и найти новое призвание.",
			Image:    "images/news-4.jpg",
			Date:     "2023-09-28",
		},
	}
}
