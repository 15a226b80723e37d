package common

import "testing"

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlog(1), "value")

	if _, ok := cache.Get(CacheKeyBlog(1)); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Delete(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlogList, "value")
	cache.Delete(CacheKeyBlogList)

	if _, ok := cache.Get(CacheKeyBlogList); ok {
		t.Error("expected key to be deleted")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlogStats, "value")
	cache.Flush()

	if _, ok := cache.Get(CacheKeyBlogStats); ok {
		t.Error("expected cache to be flushed")
	}
}
