//go:build ignore

//kage:unit pixels

// Full-quality lens program: clear-zone magnification, melting-zone pull with
// curvature and swirl, chromatic aberration, prism rim, tint and shimmer.
// The coordinate math is mirrored in lens/distort.go for tests; keep in sync.

package main

var Pointer vec2
var Viewport vec2
var Time float

var Radius float
var ClearZone float
var Chromatic float
var Prism float
var ClearPull float
var PullExponent float
var PullStrength float
var SwirlStrength float
var ChromaticStrength float
var ChromaticExponent float
var PrismStrength float
var PrismExponent float
var TintStrength float
var ShimmerStrength float

// stretch maps a normalized coordinate into aspect-corrected space.
func stretch(c vec2) vec2 {
	aspect := Viewport.x / Viewport.y
	if aspect >= 1 {
		return vec2(c.x*aspect, c.y)
	}
	return vec2(c.x, c.y/aspect)
}

// unstretch converts an aspect-corrected coordinate back to sample space.
func unstretch(c vec2) vec2 {
	aspect := Viewport.x / Viewport.y
	if aspect >= 1 {
		return vec2(c.x/aspect, c.y)
	}
	return vec2(c.x, c.y*aspect)
}

// sampleSrc reads the source at a normalized coordinate. Out of bounds reads
// are transparent, never wrapped.
func sampleSrc(uv vec2) vec4 {
	if uv.x < 0 || uv.x > 1 || uv.y < 0 || uv.y > 1 {
		return vec4(0)
	}
	return imageSrc0At(uv*imageSrc0Size() + imageSrc0Origin())
}

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	uv := (srcPos - imageSrc0Origin()) / imageSrc0Size()
	cuv := stretch(uv)
	cpt := stretch(Pointer / Viewport)

	to := cpt - cuv
	nd := length(to) / Radius
	if nd >= 1 {
		// outside the lens the base pass already shows the texture
		return vec4(0)
	}

	dir := vec2(0)
	if length(to) > 0 {
		dir = normalize(to)
	}
	angle := atan2(cuv.y-cpt.y, cuv.x-cpt.x)

	offset := vec2(0)
	if nd < ClearZone {
		offset = to * ClearPull * nd
	} else {
		edge := (nd - ClearZone) / (1 - ClearZone)
		pull := pow(edge, PullExponent) * PullStrength
		// curvature bends the pull angle, strongest mid-lens
		bend := sin(nd*3.14159265) * edge
		cb := cos(bend)
		sb := sin(bend)
		bent := vec2(dir.x*cb-dir.y*sb, dir.x*sb+dir.y*cb)
		offset = bent * pull * Radius
		swirl := sin(angle*3+nd*6.2831853+Time*2) * edge * SwirlStrength
		offset += vec2(-dir.y, dir.x) * swirl * Radius
	}

	clr := sampleSrc(unstretch(cuv + offset))

	if nd > Chromatic {
		mag := pow((nd-Chromatic)/(1-Chromatic), ChromaticExponent) * ChromaticStrength * Radius
		cr := sampleSrc(unstretch(cuv + offset + dir*mag*0.5))
		cg := sampleSrc(unstretch(cuv + offset + dir*mag))
		cb := sampleSrc(unstretch(cuv + offset + dir*mag*1.5))
		clr = vec4(cr.r, cg.g, cb.b, (cr.a+cg.a+cb.a)/3)
	}

	if nd > Prism {
		w := pow((nd-Prism)/(1-Prism), PrismExponent) * PrismStrength
		spectrum := vec3(
			0.5+0.5*sin(angle*2+Time),
			0.5+0.5*sin(angle*2+Time+2.0944),
			0.5+0.5*sin(angle*2+Time+4.1888),
		)
		clr = vec4(mix(clr.rgb, spectrum*clr.a, w), clr.a)
	}

	// near-unity glass tint with a slight blue bias, plus shimmer
	tint := vec3(1-TintStrength*0.6, 1-TintStrength*0.2, 1)
	shimmer := 1 + sin(angle*5+Time*3)*ShimmerStrength*nd
	clr = vec4(clr.rgb*tint*shimmer, clr.a)

	// soft rim so the lens edge is not a hard circle
	fade := 1 - smoothstep(0.94, 1.0, nd)
	return clr * fade
}
