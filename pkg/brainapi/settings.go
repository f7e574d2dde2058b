package brainapi

import "context"

const settingsCacheKey = "settings"

// Settings is the server-side key/value configuration map.
type Settings map[string]string

// GetSettings returns all settings. Cached briefly, invalidated on update.
func (c *Client) GetSettings(ctx context.Context) (Settings, error) {
	if cached, found := c.cache.Get(settingsCacheKey); found {
		return cached.(Settings), nil
	}

	var settings Settings
	if err := c.get(ctx, "/settings", &settings); err != nil {
		return nil, err
	}
	c.cache.SetDefault(settingsCacheKey, settings)
	return settings, nil
}

func (c *Client) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	if err := c.get(ctx, "/settings/"+key, &value); err != nil {
		return "", err
	}
	return value, nil
}

func (c *Client) UpdateSetting(ctx context.Context, key, value string) error {
	if err := c.put(ctx, "/settings/"+key, map[string]string{"value": value}, nil); err != nil {
		return err
	}
	c.cache.Delete(settingsCacheKey)
	return nil
}
