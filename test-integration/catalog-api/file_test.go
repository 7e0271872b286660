package integration

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/game-catalog-server/test-integration/catalog-api/helpers"
)

var _ = Describe("File Source Integration", Label("file"), func() {
	var (
		tempDir     string
		catalogFile string
	)

	BeforeEach(func() {
		tempDir = createTempDir("file-test-")
		catalogFile = helpers.WriteCatalogFile(tempDir, "catalog.json", helpers.CreateStandardCatalog())
	})

	AfterEach(func() {
		cleanupTempDir(tempDir)
	})

	It("publishes the catalog and records the sync status", func() {
		statusDir := filepath.Join(tempDir, "status")
		configFile := helpers.WriteConfigYAML(tempDir, "file-catalog", helpers.FileSource(catalogFile),
			&helpers.ConfigOptions{StatusDir: statusDir})

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(10 * time.Second)

		Eventually(func() string {
			info := serverHelper.GetCatalogInfo()
			if info.SyncStatus == nil {
				return ""
			}
			return info.SyncStatus.Phase
		}, 5*time.Second, 100*time.Millisecond).Should(Equal("Complete"))

		info := serverHelper.GetCatalogInfo()
		Expect(info.Name).To(Equal("file-catalog"))
		Expect(info.Version).To(Equal("1.0.0"))
		Expect(info.TotalGames).To(Equal(5))
		Expect(info.SyncStatus.LastSyncHash).NotTo(BeEmpty())

		Expect(filepath.Join(statusDir, "file-catalog", "status.json")).To(BeAnExistingFile())
	})

	It("picks up changes to the file on the next sync", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "file-catalog", helpers.FileSource(catalogFile),
			&helpers.ConfigOptions{SyncInterval: "1s"})

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(10 * time.Second)
		Expect(serverHelper.QueryGames(nil)).To(HaveLen(5))
		firstSnapshot := serverHelper.GetFacets().SnapshotID

		updated := helpers.CreateStandardCatalog()
		updated.Games = updated.Games[:2]
		helpers.WriteCatalogFile(tempDir, "catalog.json", updated)

		Eventually(func() int {
			return len(serverHelper.QueryGames(nil))
		}, 15*time.Second, 200*time.Millisecond).Should(Equal(2))
		Expect(serverHelper.GetFacets().SnapshotID).NotTo(Equal(firstSnapshot))
		Expect(serverHelper.GetFacets().Categories).To(Equal([]string{"Card Game", "Strategy"}))
	})

	It("stays unready when the file is missing", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "missing", helpers.FileSource(filepath.Join(tempDir, "nope.json")), nil)

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()

		Eventually(func() (int, error) {
			resp, err := serverHelper.Get("/health")
			if err != nil {
				return 0, err
			}
			defer func() {
				_ = resp.Body.Close()
			}()
			return resp.StatusCode, nil
		}, 10*time.Second, 100*time.Millisecond).Should(Equal(http.StatusOK))

		Consistently(func() (int, error) {
			resp, err := serverHelper.Get("/readiness")
			if err != nil {
				return 0, err
			}
			defer func() {
				_ = resp.Body.Close()
			}()
			return resp.StatusCode, nil
		}, time.Second, 200*time.Millisecond).Should(Equal(http.StatusServiceUnavailable))

		// Queries answer from the empty snapshot rather than failing
		Expect(serverHelper.QueryGames(nil)).To(BeEmpty())
	})

	It("rejects a document that breaks the catalog schema", func() {
		Expect(os.WriteFile(catalogFile, []byte(`{"games": [{"title": "no id"}]}`), 0600)).To(Succeed())
		configFile := helpers.WriteConfigYAML(tempDir, "invalid", helpers.FileSource(catalogFile), nil)

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()

		Eventually(func() string {
			info := serverHelper.GetCatalogInfo()
			if info.SyncStatus == nil {
				return ""
			}
			return info.SyncStatus.Phase
		}, 10*time.Second, 100*time.Millisecond).Should(Equal("Failed"))
	})
})
