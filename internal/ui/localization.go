package ui

import "fmt"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// DefaultLanguage is used for "system" and as the last fallback
const DefaultLanguage = "es"

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyRecipeName        = "recipe_name"
	KeyImageURL          = "image_url"
	KeyAdd               = "add"
	KeyDelete            = "delete"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyNameRequired      = "name_required"
	KeyImageRequired     = "image_required"
	KeyEntryAdded        = "entry_added"
	KeyImageOf           = "image_of"
	KeyImageLoading      = "image_loading"
	KeyImageFailed       = "image_failed"
	KeyEmptyList         = "empty_list"
	KeyFetchTimeout      = "fetch_timeout"
	KeyMaxImageSize      = "max_image_size"
	KeyCardImageHeight   = "card_image_height"
	KeyRestartToApply    = "restart_to_apply"
	KeyErrorAddingRecipe = "error_adding_recipe"
	KeyFetchRetry        = "fetch_retry"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: DefaultLanguage,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = DefaultLanguage
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to the default language
	if texts, exists := l.texts[DefaultLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args applied
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"es": "Español",
		"en": "English",
		"pt": "Português",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// Spanish texts
	l.texts["es"] = map[string]string{
		KeyAppTitle:          "Healthy Living App",
		KeyRecipeName:        "Nombre de la receta",
		KeyImageURL:          "URL de la imagen",
		KeyAdd:               "Agregar",
		KeyDelete:            "Eliminar",
		KeySettings:          "Configuración",
		KeyFile:              "Archivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Guardar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "¡Configuración guardada!",
		KeyNameRequired:      "Escribe el nombre de la receta",
		KeyImageRequired:     "Escribe la URL de la imagen",
		KeyEntryAdded:        "Receta agregada",
		KeyImageOf:           "Imagen de %s",
		KeyImageLoading:      "Cargando imagen...",
		KeyImageFailed:       "No se pudo cargar la imagen",
		KeyEmptyList:         "Todavía no hay recetas",
		KeyFetchTimeout:      "Tiempo de espera (segundos)",
		KeyMaxImageSize:      "Tamaño máximo de imagen (MB)",
		KeyCardImageHeight:   "Altura de la imagen",
		KeyRestartToApply:    "Algunos cambios se aplican al reiniciar",
		KeyErrorAddingRecipe: "Error al agregar la receta",
		KeyFetchRetry:        "Reintentar descargas fallidas",
	}

	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Healthy Living App",
		KeyRecipeName:        "Recipe name",
		KeyImageURL:          "Image URL",
		KeyAdd:               "Add",
		KeyDelete:            "Delete",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyNameRequired:      "Please enter a recipe name",
		KeyImageRequired:     "Please enter an image URL",
		KeyEntryAdded:        "Recipe added",
		KeyImageOf:           "Image of %s",
		KeyImageLoading:      "Loading image...",
		KeyImageFailed:       "Image could not be loaded",
		KeyEmptyList:         "No recipes yet",
		KeyFetchTimeout:      "Fetch timeout (seconds)",
		KeyMaxImageSize:      "Max image size (MB)",
		KeyCardImageHeight:   "Image height",
		KeyRestartToApply:    "Some changes apply after restart",
		KeyErrorAddingRecipe: "Error adding recipe",
		KeyFetchRetry:        "Retry failed downloads",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Healthy Living App",
		KeyRecipeName:        "Nome da receita",
		KeyImageURL:          "URL da imagem",
		KeyAdd:               "Adicionar",
		KeyDelete:            "Excluir",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyNameRequired:      "Por favor, digite o nome da receita",
		KeyImageRequired:     "Por favor, digite a URL da imagem",
		KeyEntryAdded:        "Receita adicionada",
		KeyImageOf:           "Imagem de %s",
		KeyImageLoading:      "Carregando imagem...",
		KeyImageFailed:       "Não foi possível carregar a imagem",
		KeyEmptyList:         "Nenhuma receita ainda",
		KeyFetchTimeout:      "Tempo limite (segundos)",
		KeyMaxImageSize:      "Tamanho máximo da imagem (MB)",
		KeyCardImageHeight:   "Altura da imagem",
		KeyRestartToApply:    "Algumas alterações valem após reiniciar",
		KeyErrorAddingRecipe: "Erro ao adicionar receita",
		KeyFetchRetry:        "Repetir downloads com falha",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Healthy Living App",
		KeyRecipeName:        "Название рецепта",
		KeyImageURL:          "URL изображения",
		KeyAdd:               "Добавить",
		KeyDelete:            "Удалить",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyNameRequired:      "Пожалуйста, введите название рецепта",
		KeyImageRequired:     "Пожалуйста, введите URL изображения",
		KeyEntryAdded:        "Рецепт добавлен",
		KeyImageOf:           "Изображение: %s",
		KeyImageLoading:      "Загрузка изображения...",
		KeyImageFailed:       "Не удалось загрузить изображение",
		KeyEmptyList:         "Рецептов пока нет",
		KeyFetchTimeout:      "Тайм-аут загрузки (секунды)",
		KeyMaxImageSize:      "Макс. размер изображения (МБ)",
		KeyCardImageHeight:   "Высота изображения",
		KeyRestartToApply:    "Некоторые изменения вступят в силу после перезапуска",
		KeyErrorAddingRecipe: "Ошибка добавления рецепта",
		KeyFetchRetry:        "Повторять неудачные загрузки",
	}
}
