package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyInputFile         = "input_file"
	KeyDestination       = "destination"
	KeyFormat            = "format"
	KeyFormatAudio       = "format_audio"
	KeyFormatVideoAudio  = "format_video_audio"
	KeyBrowse            = "browse"
	KeyStart             = "start"
	KeyPause             = "pause"
	KeyResume            = "resume"
	KeyCancel            = "cancel"
	KeySave              = "save"
	KeyOpenFolder        = "open_folder"
	KeyOpenFolderOnDone  = "open_folder_on_done"
	KeyPlaylistURL       = "playlist_url"
	KeyImport            = "import"
	KeyImporting         = "importing"
	KeyImportFailed      = "import_failed"
	KeyPlaylistImported  = "playlist_imported"
	KeyNoInput           = "no_input"
	KeyCurrentTrack      = "current_track"
	KeyNextTrack         = "next_track"
	KeySpeed             = "speed"
	KeyETA               = "eta"
	KeyReady             = "ready"
	KeyDownloading       = "downloading"
	KeyPaused            = "paused"
	KeyCancelling        = "cancelling"
	KeyDownloadCompleted = "download_completed"
	KeyDownloadCancelled = "download_cancelled"
	KeyDownloadFailed    = "download_failed"
	KeyFailedTracks      = "failed_tracks"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeyTracksLoaded      = "tracks_loaded"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
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

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Song Batch Downloader",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyInputFile:         "Song list (.xlsx, .txt)",
		KeyDestination:       "Destination folder",
		KeyFormat:            "Format",
		KeyFormatAudio:       "Audio (mp3)",
		KeyFormatVideoAudio:  "Video + audio (mp4)",
		KeyBrowse:            "Browse",
		KeyStart:             "Start",
		KeyPause:             "Pause",
		KeyResume:            "Resume",
		KeyCancel:            "Cancel",
		KeySave:              "Save",
		KeyOpenFolder:        "Open folder",
		KeyOpenFolderOnDone:  "Open folder when the job completes",
		KeyPlaylistURL:       "Or import a playlist URL (https://youtube.com/playlist?list=...)",
		KeyImport:            "Import",
		KeyImporting:         "Importing playlist...",
		KeyImportFailed:      "Playlist import failed",
		KeyPlaylistImported:  "Playlist imported",
		KeyNoInput:           "No song list selected",
		KeyCurrentTrack:      "Current",
		KeyNextTrack:         "Next",
		KeySpeed:             "Speed",
		KeyETA:               "ETA",
		KeyReady:             "Ready",
		KeyDownloading:       "Downloading...",
		KeyPaused:            "Paused",
		KeyCancelling:        "Cancelling after the current song...",
		KeyDownloadCompleted: "Download complete!",
		KeyDownloadCancelled: "Download cancelled",
		KeyDownloadFailed:    "Download failed",
		KeyFailedTracks:      "Failed",
		KeyErrorOpeningDir:   "Error opening folder",
		KeyTracksLoaded:      "songs loaded",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Пакетный загрузчик песен",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyInputFile:         "Список песен (.xlsx, .txt)",
		KeyDestination:       "Папка загрузки",
		KeyFormat:            "Формат",
		KeyFormatAudio:       "Аудио (mp3)",
		KeyFormatVideoAudio:  "Видео + аудио (mp4)",
		KeyBrowse:            "Обзор",
		KeyStart:             "Старт",
		KeyPause:             "Пауза",
		KeyResume:            "Продолжить",
		KeyCancel:            "Отмена",
		KeySave:              "Сохранить",
		KeyOpenFolder:        "Открыть папку",
		KeyOpenFolderOnDone:  "Открыть папку после завершения",
		KeyPlaylistURL:       "Или импортируйте плейлист (https://youtube.com/playlist?list=...)",
		KeyImport:            "Импорт",
		KeyImporting:         "Импорт плейлиста...",
		KeyImportFailed:      "Ошибка импорта плейлиста",
		KeyPlaylistImported:  "Плейлист импортирован",
		KeyNoInput:           "Список песен не выбран",
		KeyCurrentTrack:      "Сейчас",
		KeyNextTrack:         "Далее",
		KeySpeed:             "Скорость",
		KeyETA:               "Осталось",
		KeyReady:             "Готово к запуску",
		KeyDownloading:       "Загрузка...",
		KeyPaused:            "Пауза",
		KeyCancelling:        "Отмена после текущей песни...",
		KeyDownloadCompleted: "Загрузка завершена!",
		KeyDownloadCancelled: "Загрузка отменена",
		KeyDownloadFailed:    "Ошибка загрузки",
		KeyFailedTracks:      "Не загружено",
		KeyErrorOpeningDir:   "Ошибка открытия папки",
		KeyTracksLoaded:      "песен загружено",
		KeySettingsSaved:     "Настройки успешно сохранены!",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Baixador de Músicas em Lote",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyInputFile:         "Lista de músicas (.xlsx, .txt)",
		KeyDestination:       "Pasta de destino",
		KeyFormat:            "Formato",
		KeyFormatAudio:       "Áudio (mp3)",
		KeyFormatVideoAudio:  "Vídeo + áudio (mp4)",
		KeyBrowse:            "Navegar",
		KeyStart:             "Iniciar",
		KeyPause:             "Pausar",
		KeyResume:            "Continuar",
		KeyCancel:            "Cancelar",
		KeySave:              "Salvar",
		KeyOpenFolder:        "Abrir pasta",
		KeyOpenFolderOnDone:  "Abrir pasta ao concluir",
		KeyPlaylistURL:       "Ou importe uma playlist (https://youtube.com/playlist?list=...)",
		KeyImport:            "Importar",
		KeyImporting:         "Importando playlist...",
		KeyImportFailed:      "Falha ao importar playlist",
		KeyPlaylistImported:  "Playlist importada",
		KeyNoInput:           "Nenhuma lista selecionada",
		KeyCurrentTrack:      "Atual",
		KeyNextTrack:         "Próxima",
		KeySpeed:             "Velocidade",
		KeyETA:               "Restante",
		KeyReady:             "Pronto",
		KeyDownloading:       "Baixando...",
		KeyPaused:            "Pausado",
		KeyCancelling:        "Cancelando após a música atual...",
		KeyDownloadCompleted: "Download concluído!",
		KeyDownloadCancelled: "Download cancelado",
		KeyDownloadFailed:    "Falha no download",
		KeyFailedTracks:      "Com falha",
		KeyErrorOpeningDir:   "Erro ao abrir pasta",
		KeyTracksLoaded:      "músicas carregadas",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
	}
}
