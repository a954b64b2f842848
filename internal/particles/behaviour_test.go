package particles_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/chargesim/internal/particles"
)

var _ = Describe("System", func() {
	var sys *particles.System

	BeforeEach(func() {
		sys = particles.NewSystem()
	})

	Describe("force pass", func() {
		DescribeTable("unit charges fall off with the square of distance",
			func(d float64) {
				a := particles.Particle{Mass: 1, Charge: 1}
				b := particles.Particle{X: d, Mass: 1, Charge: -1}
				fx, fy := a.Force(&b)
				Expect(math.Hypot(fx, fy)).To(BeNumerically("~", 1/(d*d), 1e-12))
			},
			Entry("d=1", 1.0),
			Entry("d=3", 3.0),
			Entry("d=12.5", 12.5),
		)

		It("caps the per-step velocity increment at 1 per axis", func() {
			sys.K = 1
			Expect(sys.Spawn(particles.Particle{X: 0, Y: 0, Mass: 1, Charge: 1e6})).To(Succeed())
			Expect(sys.Spawn(particles.Particle{X: 1, Y: 1, Mass: 1, Charge: 1e6})).To(Succeed())

			sys.UpdateVel()
			for _, p := range sys.Particles() {
				Expect(math.Abs(p.VX)).To(BeNumerically("<=", 1))
				Expect(math.Abs(p.VY)).To(BeNumerically("<=", 1))
			}
			Expect(sys.Particles()[0].VX).To(Equal(1.0))
		})

		It("pulls opposite charges together with the default coefficient", func() {
			Expect(sys.Spawn(particles.Particle{X: 0, Y: 0, Mass: 10, Charge: 1})).To(Succeed())
			Expect(sys.Spawn(particles.Particle{X: 10, Y: 0, Mass: 10, Charge: -1})).To(Succeed())

			sys.UpdateVel()
			ps := sys.Particles()
			Expect(ps[0].VX).To(BeNumerically(">", 0))
			Expect(ps[1].VX).To(BeNumerically("<", 0))
		})

		It("pushes them apart once K is flipped", func() {
			sys.FlipK()
			Expect(sys.Spawn(particles.Particle{X: 0, Y: 0, Mass: 10, Charge: 1})).To(Succeed())
			Expect(sys.Spawn(particles.Particle{X: 10, Y: 0, Mass: 10, Charge: -1})).To(Succeed())

			sys.UpdateVel()
			ps := sys.Particles()
			Expect(ps[0].VX).To(BeNumerically("<", 0))
			Expect(ps[1].VX).To(BeNumerically(">", 0))
		})
	})

	Describe("position step", func() {
		It("reflects off the right wall with halved speed", func() {
			Expect(sys.Spawn(particles.Particle{X: 99, Y: 10, VX: 5, Mass: 1})).To(Succeed())
			sys.UpdatePos(particles.Bounds{XMax: 100, YMax: 100})

			p := sys.Particles()[0]
			Expect(p.X).To(Equal(100.0))
			Expect(p.VX).To(Equal(-2.5))
		})

		It("never moves a stationary particle", func() {
			Expect(sys.Spawn(particles.Particle{X: 20, Y: 20, Mass: 1, Charge: 5, Stationary: true})).To(Succeed())
			Expect(sys.Spawn(particles.Particle{X: 30, Y: 25, Mass: 1, Charge: 5})).To(Succeed())

			for i := 0; i < 20; i++ {
				sys.Step(particles.Bounds{XMax: 200, YMax: 200})
			}
			p := sys.Particles()[0]
			Expect(p.X).To(Equal(20.0))
			Expect(p.Y).To(Equal(20.0))
		})
	})

	Describe("collection", func() {
		It("reports nothing removed when empty", func() {
			_, ok := sys.RemoveLast()
			Expect(ok).To(BeFalse())
			Expect(sys.Len()).To(BeZero())
		})

		It("rejects massless particles", func() {
			Expect(sys.Spawn(particles.Particle{Charge: 1})).To(MatchError(particles.ErrInvalidMass))
		})
	})
})
