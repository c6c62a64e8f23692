package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/admsdev98/NutriOrxata/config"
	"github.com/admsdev98/NutriOrxata/models"
	"github.com/admsdev98/NutriOrxata/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type WeekPlanTemplateItemInput struct {
	DayKey         string
	SlotKey        string
	DishTemplateID *string
	Notes          *string
}

type WeekPlanTemplateInput struct {
	Name  string
	Items []WeekPlanTemplateItemInput
}

type WeekPlanInstanceItemInput struct {
	DayKey         string
	SlotKey        string
	DishTemplateID *string
	DishName       *string
	Notes          *string
}

type WeekPlanTemplateItemOut struct {
	ID               string  `json:"id"`
	DayKey           string  `json:"day_key"`
	SlotKey          string  `json:"slot_key"`
	DishTemplateID   *string `json:"dish_template_id"`
	DishTemplateName *string `json:"dish_template_name"`
	Notes            *string `json:"notes"`
	Position         int     `json:"position"`
}

type WeekPlanTemplateListItem struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenant_id"`
	Name      string     `json:"name"`
	ItemCount int        `json:"item_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type WeekPlanTemplateOut struct {
	ID        string                    `json:"id"`
	TenantID  string                    `json:"tenant_id"`
	Name      string                    `json:"name"`
	Items     []WeekPlanTemplateItemOut `json:"items"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt *time.Time                `json:"updated_at"`
}

type WeekPlanInstanceItemOut struct {
	ID                   string  `json:"id"`
	SourceTemplateItemID *string `json:"source_template_item_id"`
	DayKey               string  `json:"day_key"`
	SlotKey              string  `json:"slot_key"`
	DishTemplateID       *string `json:"dish_template_id"`
	DishName             *string `json:"dish_name"`
	Notes                *string `json:"notes"`
	Position             int     `json:"position"`
}

type WeekPlanInstanceOut struct {
	ID                   string                    `json:"id"`
	TenantID             string                    `json:"tenant_id"`
	TemplateID           *string                   `json:"template_id"`
	ClientRef            string                    `json:"client_ref"`
	WeekStartDate        string                    `json:"week_start_date"`
	TemplateNameSnapshot *string                   `json:"template_name_snapshot"`
	Items                []WeekPlanInstanceItemOut `json:"items"`
	CreatedAt            time.Time                 `json:"created_at"`
	UpdatedAt            *time.Time                `json:"updated_at"`
}

func uuidPtrString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// normalizePlanSlots trims slot keys and checks the day/slot vocabulary
// before any write.
func normalizePlanSlots(days []string, slots []string) ([]utils.PlanSlot, *ServiceError) {
	out := make([]utils.PlanSlot, 0, len(days))
	for i := range days {
		if _, ok := utils.DayOrder[days[i]]; !ok {
			return nil, errBadRequest("invalid_day_key")
		}
		slotKey := strings.TrimSpace(slots[i])
		if slotKey == "" {
			return nil, errBadRequest("invalid_slot_key")
		}
		out = append(out, utils.PlanSlot{DayKey: days[i], SlotKey: slotKey})
	}
	if utils.HasDuplicateDaySlot(out) {
		return nil, errBadRequest("duplicate_day_slot")
	}
	return out, nil
}

// dishNamesByID resolves optional dish references against the tenant's
// catalog, failing the write when any referenced dish is missing.
func dishNamesByID(tenantID uuid.UUID, rawIDs []*string) (map[uuid.UUID]string, *ServiceError) {
	parsed := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		if raw == nil {
			continue
		}
		id, err := uuid.Parse(*raw)
		if err != nil {
			return nil, errBadRequest("invalid_dish_template_id")
		}
		parsed = append(parsed, id)
	}
	if len(parsed) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var rows []models.DishTemplate
	err := config.DB.Where("tenant_id = ? AND id IN ?", tenantID, parsed).Find(&rows).Error
	if err != nil {
		return nil, errInternal("dish_template_lookup_failed")
	}

	namesByID := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		namesByID[row.ID] = row.Name
	}
	for _, id := range parsed {
		if _, ok := namesByID[id]; !ok {
			return nil, errNotFound("dish_template_not_found")
		}
	}
	return namesByID, nil
}

func templateItemOut(row *models.WeekPlanTemplateItem) WeekPlanTemplateItemOut {
	return WeekPlanTemplateItemOut{
		ID:               row.ID.String(),
		DayKey:           row.DayKey,
		SlotKey:          row.SlotKey,
		DishTemplateID:   uuidPtrString(row.DishTemplateID),
		DishTemplateName: row.DishTemplateName,
		Notes:            row.Notes,
		Position:         row.Position,
	}
}

func instanceItemOut(row *models.WeekPlanInstanceItem) WeekPlanInstanceItemOut {
	return WeekPlanInstanceItemOut{
		ID:                   row.ID.String(),
		SourceTemplateItemID: uuidPtrString(row.SourceTemplateItemID),
		DayKey:               row.DayKey,
		SlotKey:              row.SlotKey,
		DishTemplateID:       uuidPtrString(row.DishTemplateID),
		DishName:             row.DishName,
		Notes:                row.Notes,
		Position:             row.Position,
	}
}

func fetchWeekPlanTemplate(tenantID, templateID uuid.UUID) (*models.WeekPlanTemplate, *ServiceError) {
	var row models.WeekPlanTemplate
	err := config.DB.Where("tenant_id = ? AND id = ?", tenantID, templateID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("week_plan_template_not_found")
	}
	if err != nil {
		return nil, errInternal("week_plan_template_lookup_failed")
	}
	return &row, nil
}

func fetchWeekPlanTemplateItems(tenantID, templateID uuid.UUID) ([]models.WeekPlanTemplateItem, *ServiceError) {
	var rows []models.WeekPlanTemplateItem
	err := config.DB.
		Where("tenant_id = ? AND week_plan_template_id = ?", tenantID, templateID).
		Order("position asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, errInternal("week_plan_template_lookup_failed")
	}
	return rows, nil
}

func weekPlanTemplateOut(template *models.WeekPlanTemplate, items []models.WeekPlanTemplateItem) *WeekPlanTemplateOut {
	itemsOut := make([]WeekPlanTemplateItemOut, 0, len(items))
	for i := range items {
		itemsOut = append(itemsOut, templateItemOut(&items[i]))
	}
	return &WeekPlanTemplateOut{
		ID:        template.ID.String(),
		TenantID:  template.TenantID.String(),
		Name:      template.Name,
		Items:     itemsOut,
		CreatedAt: template.CreatedAt,
		UpdatedAt: template.UpdatedAt,
	}
}

func ListWeekPlanTemplates(user *models.User, query string, limit, offset int) ([]WeekPlanTemplateListItem, *ServiceError) {
	stmt := config.DB.Model(&models.WeekPlanTemplate{}).
		Select("week_plan_templates.*, COUNT(week_plan_template_items.id) AS item_count").
		Joins("LEFT JOIN week_plan_template_items ON week_plan_template_items.week_plan_template_id = week_plan_templates.id").
		Where("week_plan_templates.tenant_id = ?", user.TenantID).
		Group("week_plan_templates.id")
	if q := strings.TrimSpace(query); q != "" {
		stmt = stmt.Where("week_plan_templates.name ILIKE ?", "%"+q+"%")
	}

	var rows []struct {
		models.WeekPlanTemplate
		ItemCount int
	}
	if err := stmt.Order("week_plan_templates.name asc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, errInternal("week_plan_template_list_failed")
	}

	out := make([]WeekPlanTemplateListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, WeekPlanTemplateListItem{
			ID:        row.ID.String(),
			TenantID:  row.TenantID.String(),
			Name:      row.Name,
			ItemCount: row.ItemCount,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func GetWeekPlanTemplate(user *models.User, templateID uuid.UUID) (*WeekPlanTemplateOut, *ServiceError) {
	template, serviceErr := fetchWeekPlanTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	items, serviceErr := fetchWeekPlanTemplateItems(user.TenantID, template.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return weekPlanTemplateOut(template, items), nil
}

// buildTemplateItems validates, resolves dish names, sorts by (day rank,
// slot key) and assigns positions by index.
func buildTemplateItems(tenantID, templateID uuid.UUID, items []WeekPlanTemplateItemInput, now time.Time) ([]models.WeekPlanTemplateItem, *ServiceError) {
	days := make([]string, len(items))
	slots := make([]string, len(items))
	for i, item := range items {
		days[i] = item.DayKey
		slots[i] = item.SlotKey
	}
	normalized, serviceErr := normalizePlanSlots(days, slots)
	if serviceErr != nil {
		return nil, serviceErr
	}

	rawIDs := make([]*string, len(items))
	for i, item := range items {
		rawIDs[i] = item.DishTemplateID
	}
	names, serviceErr := dishNamesByID(tenantID, rawIDs)
	if serviceErr != nil {
		return nil, serviceErr
	}

	type indexedItem struct {
		slot utils.PlanSlot
		in   WeekPlanTemplateItemInput
	}
	indexed := make([]indexedItem, len(items))
	for i := range items {
		indexed[i] = indexedItem{slot: normalized[i], in: items[i]}
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return utils.SlotLess(indexed[a].slot, indexed[b].slot)
	})

	rows := make([]models.WeekPlanTemplateItem, 0, len(indexed))
	for idx, entry := range indexed {
		row := models.WeekPlanTemplateItem{
			ID:                 uuid.New(),
			TenantID:           tenantID,
			WeekPlanTemplateID: templateID,
			DayKey:             entry.slot.DayKey,
			SlotKey:            entry.slot.SlotKey,
			Notes:              entry.in.Notes,
			Position:           idx,
			CreatedAt:          now,
		}
		if entry.in.DishTemplateID != nil {
			id, _ := uuid.Parse(*entry.in.DishTemplateID)
			name := names[id]
			row.DishTemplateID = &id
			row.DishTemplateName = &name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func CreateWeekPlanTemplate(user *models.User, in WeekPlanTemplateInput) (*WeekPlanTemplateOut, *ServiceError) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errBadRequest("invalid_template_name")
	}

	now := time.Now().UTC()
	template := models.WeekPlanTemplate{
		ID:        uuid.New(),
		TenantID:  user.TenantID,
		Name:      name,
		CreatedAt: now,
	}
	rows, serviceErr := buildTemplateItems(user.TenantID, template.ID, in.Items, now)
	if serviceErr != nil {
		return nil, serviceErr
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&template).Error; err != nil {
			return err
		}
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errInternal("week_plan_template_save_failed")
	}

	return GetWeekPlanTemplate(user, template.ID)
}

func UpdateWeekPlanTemplate(user *models.User, templateID uuid.UUID, in WeekPlanTemplateInput) (*WeekPlanTemplateOut, *ServiceError) {
	template, serviceErr := fetchWeekPlanTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return nil, serviceErr
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errBadRequest("invalid_template_name")
	}

	now := time.Now().UTC()
	rows, serviceErr := buildTemplateItems(user.TenantID, template.ID, in.Items, now)
	if serviceErr != nil {
		return nil, serviceErr
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(template).Updates(map[string]interface{}{
			"name":       name,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("tenant_id = ? AND week_plan_template_id = ?", user.TenantID, template.ID).
			Delete(&models.WeekPlanTemplateItem{}).Error; err != nil {
			return err
		}
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errInternal("week_plan_template_save_failed")
	}

	return GetWeekPlanTemplate(user, template.ID)
}

func DeleteWeekPlanTemplate(user *models.User, templateID uuid.UUID) *ServiceError {
	template, serviceErr := fetchWeekPlanTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return serviceErr
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND week_plan_template_id = ?", user.TenantID, template.ID).
			Delete(&models.WeekPlanTemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(template).Error
	})
	if err != nil {
		return errInternal("week_plan_template_delete_failed")
	}
	return nil
}

func fetchWeekPlanInstance(tenantID, instanceID uuid.UUID) (*models.WeekPlanInstance, *ServiceError) {
	var row models.WeekPlanInstance
	err := config.DB.Where("tenant_id = ? AND id = ?", tenantID, instanceID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("week_plan_instance_not_found")
	}
	if err != nil {
		return nil, errInternal("week_plan_instance_lookup_failed")
	}
	return &row, nil
}

func fetchWeekPlanInstanceItems(tenantID, instanceID uuid.UUID) ([]models.WeekPlanInstanceItem, *ServiceError) {
	var rows []models.WeekPlanInstanceItem
	err := config.DB.
		Where("tenant_id = ? AND week_plan_instance_id = ?", tenantID, instanceID).
		Order("position asc, created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, errInternal("week_plan_instance_lookup_failed")
	}
	return rows, nil
}

func weekPlanInstanceOut(instance *models.WeekPlanInstance, items []models.WeekPlanInstanceItem) *WeekPlanInstanceOut {
	itemsOut := make([]WeekPlanInstanceItemOut, 0, len(items))
	for i := range items {
		itemsOut = append(itemsOut, instanceItemOut(&items[i]))
	}
	return &WeekPlanInstanceOut{
		ID:                   instance.ID.String(),
		TenantID:             instance.TenantID.String(),
		TemplateID:           uuidPtrString(instance.TemplateID),
		ClientRef:            instance.ClientRef,
		WeekStartDate:        instance.WeekStartDate.Format(dateLayout),
		TemplateNameSnapshot: instance.TemplateNameSnapshot,
		Items:                itemsOut,
		CreatedAt:            instance.CreatedAt,
		UpdatedAt:            instance.UpdatedAt,
	}
}

// CreateWeekPlanInstanceFromTemplate materializes a template into a brand
// new week: every template item is copied 1:1 with the dish name
// snapshotted, so later instance edits never touch template rows.
func CreateWeekPlanInstanceFromTemplate(user *models.User, templateID uuid.UUID, clientRef string, weekStartDate time.Time) (*WeekPlanInstanceOut, *ServiceError) {
	clientRef = strings.TrimSpace(clientRef)
	if clientRef == "" {
		return nil, errBadRequest("invalid_client_ref")
	}

	var existing models.WeekPlanInstance
	err := config.DB.
		Where("tenant_id = ? AND client_ref = ? AND week_start_date = ?", user.TenantID, clientRef, weekStartDate).
		First(&existing).Error
	if err == nil {
		return nil, errConflict("week_plan_instance_exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInternal("week_plan_instance_save_failed")
	}

	template, serviceErr := fetchWeekPlanTemplate(user.TenantID, templateID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	templateItems, serviceErr := fetchWeekPlanTemplateItems(user.TenantID, template.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}

	now := time.Now().UTC()
	tid := template.ID
	snapshot := template.Name
	instance := models.WeekPlanInstance{
		ID:                   uuid.New(),
		TenantID:             user.TenantID,
		TemplateID:           &tid,
		ClientRef:            clientRef,
		WeekStartDate:        weekStartDate,
		TemplateNameSnapshot: &snapshot,
		CreatedAt:            now,
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instance).Error; err != nil {
			return err
		}
		for _, templateItem := range templateItems {
			sourceID := templateItem.ID
			row := models.WeekPlanInstanceItem{
				ID:                   uuid.New(),
				TenantID:             user.TenantID,
				WeekPlanInstanceID:   instance.ID,
				SourceTemplateItemID: &sourceID,
				DayKey:               templateItem.DayKey,
				SlotKey:              templateItem.SlotKey,
				DishTemplateID:       templateItem.DishTemplateID,
				DishName:             templateItem.DishTemplateName,
				Notes:                templateItem.Notes,
				Position:             templateItem.Position,
				CreatedAt:            now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		// The unique (tenant, client_ref, week) constraint makes the
		// first writer win under concurrent creates.
		return nil, errConflict("week_plan_instance_exists")
	}

	items, serviceErr := fetchWeekPlanInstanceItems(user.TenantID, instance.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return weekPlanInstanceOut(&instance, items), nil
}

func GetWeekPlanInstance(user *models.User, instanceID uuid.UUID) (*WeekPlanInstanceOut, *ServiceError) {
	instance, serviceErr := fetchWeekPlanInstance(user.TenantID, instanceID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	items, serviceErr := fetchWeekPlanInstanceItems(user.TenantID, instance.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return weekPlanInstanceOut(instance, items), nil
}

func GetWeekPlanInstanceByClientWeek(user *models.User, clientRef string, weekStartDate time.Time) (*WeekPlanInstanceOut, *ServiceError) {
	clientRef = strings.TrimSpace(clientRef)
	if clientRef == "" {
		return nil, errBadRequest("invalid_client_ref")
	}

	var instance models.WeekPlanInstance
	err := config.DB.
		Where("tenant_id = ? AND client_ref = ? AND week_start_date = ?", user.TenantID, clientRef, weekStartDate).
		First(&instance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotFound("week_plan_instance_not_found")
	}
	if err != nil {
		return nil, errInternal("week_plan_instance_lookup_failed")
	}

	items, serviceErr := fetchWeekPlanInstanceItems(user.TenantID, instance.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return weekPlanInstanceOut(&instance, items), nil
}

// UpdateWeekPlanInstance replaces the instance's items wholesale. Dish
// names are re-resolved for referenced dishes; free-form names pass
// through untouched. Template rows are never written here.
func UpdateWeekPlanInstance(user *models.User, instanceID uuid.UUID, items []WeekPlanInstanceItemInput) (*WeekPlanInstanceOut, *ServiceError) {
	instance, serviceErr := fetchWeekPlanInstance(user.TenantID, instanceID)
	if serviceErr != nil {
		return nil, serviceErr
	}

	days := make([]string, len(items))
	slots := make([]string, len(items))
	rawIDs := make([]*string, len(items))
	for i, item := range items {
		days[i] = item.DayKey
		slots[i] = item.SlotKey
		rawIDs[i] = item.DishTemplateID
	}
	normalized, serviceErr := normalizePlanSlots(days, slots)
	if serviceErr != nil {
		return nil, serviceErr
	}
	names, serviceErr := dishNamesByID(user.TenantID, rawIDs)
	if serviceErr != nil {
		return nil, serviceErr
	}

	type indexedItem struct {
		slot utils.PlanSlot
		in   WeekPlanInstanceItemInput
	}
	indexed := make([]indexedItem, len(items))
	for i := range items {
		indexed[i] = indexedItem{slot: normalized[i], in: items[i]}
	}
	sort.SliceStable(indexed, func(a, b int) bool {
		return utils.SlotLess(indexed[a].slot, indexed[b].slot)
	})

	now := time.Now().UTC()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND week_plan_instance_id = ?", user.TenantID, instance.ID).
			Delete(&models.WeekPlanInstanceItem{}).Error; err != nil {
			return err
		}

		for idx, entry := range indexed {
			row := models.WeekPlanInstanceItem{
				ID:                 uuid.New(),
				TenantID:           user.TenantID,
				WeekPlanInstanceID: instance.ID,
				DayKey:             entry.slot.DayKey,
				SlotKey:            entry.slot.SlotKey,
				DishName:           entry.in.DishName,
				Notes:              entry.in.Notes,
				Position:           idx,
				CreatedAt:          now,
			}
			if entry.in.DishTemplateID != nil {
				id, _ := uuid.Parse(*entry.in.DishTemplateID)
				name := names[id]
				row.DishTemplateID = &id
				row.DishName = &name
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return tx.Model(instance).Update("updated_at", now).Error
	})
	if err != nil {
		return nil, errInternal("week_plan_instance_save_failed")
	}

	items2, serviceErr := fetchWeekPlanInstanceItems(user.TenantID, instance.ID)
	if serviceErr != nil {
		return nil, serviceErr
	}
	return weekPlanInstanceOut(instance, items2), nil
}
