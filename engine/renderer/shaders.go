package renderer

// litShaderSource draws textured meshes with ambient plus one directional light and a 3x3 PCF shadow lookup.
const litShaderSource = `
struct Globals {
    viewProj: mat4x4<f32>,
    lightViewProj: mat4x4<f32>,
    ambient: vec4<f32>,
    lightDir: vec4<f32>,
    lightColor: vec4<f32>,
    shadowParams: vec4<f32>,
};

struct Object {
    model: mat4x4<f32>,
    flags: vec4<f32>,
};

struct MaterialUniform {
    baseColor: vec4<f32>,
    flags: vec4<f32>,
};

@group(0) @binding(0) var<uniform> globals: Globals;
@group(0) @binding(1) var shadowMap: texture_depth_2d;
@group(0) @binding(2) var shadowSampler: sampler_comparison;

@group(1) @binding(0) var<uniform> object: Object;

@group(2) @binding(0) var<uniform> material: MaterialUniform;
@group(2) @binding(1) var colorMap: texture_2d<f32>;
@group(2) @binding(2) var colorSampler: sampler;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) normal: vec3<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) lightPos: vec4<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    let world = object.model * vec4<f32>(in.position, 1.0);
    out.clip = globals.viewProj * world;
    out.normal = (object.model * vec4<f32>(in.normal, 0.0)).xyz;
    out.uv = in.uv;
    out.lightPos = globals.lightViewProj * world;
    return out;
}

fn shadowFactor(lightPos: vec4<f32>) -> f32 {
    let ndc = lightPos.xyz / lightPos.w;
    let uv = vec2<f32>(ndc.x * 0.5 + 0.5, ndc.y * -0.5 + 0.5);
    let depth = ndc.z - globals.shadowParams.x;
    let texel = globals.shadowParams.z;
    var sum = 0.0;
    for (var y = -1; y <= 1; y++) {
        for (var x = -1; x <= 1; x++) {
            sum += textureSampleCompare(shadowMap, shadowSampler, uv + vec2<f32>(f32(x), f32(y)) * texel, depth);
        }
    }
    let inside = all(uv >= vec2<f32>(0.0)) && all(uv <= vec2<f32>(1.0)) && depth <= 1.0;
    return select(1.0, sum / 9.0, inside);
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let texel = textureSample(colorMap, colorSampler, in.uv);
    let albedo = material.baseColor * texel;
    let n = normalize(in.normal);
    let diffuse = max(dot(n, -globals.lightDir.xyz), 0.0);
    let s = shadowFactor(in.lightPos);
    var shadow = 1.0;
    if (globals.shadowParams.y > 0.5 && object.flags.x > 0.5) {
        shadow = s;
    }
    let light = globals.ambient.rgb + globals.lightColor.rgb * diffuse * shadow;
    return vec4<f32>(albedo.rgb * light, albedo.a);
}
`

// lineShaderSource draws unlit helper lines in the material's base color.
const lineShaderSource = `
struct Globals {
    viewProj: mat4x4<f32>,
    lightViewProj: mat4x4<f32>,
    ambient: vec4<f32>,
    lightDir: vec4<f32>,
    lightColor: vec4<f32>,
    shadowParams: vec4<f32>,
};

struct Object {
    model: mat4x4<f32>,
    flags: vec4<f32>,
};

struct MaterialUniform {
    baseColor: vec4<f32>,
    flags: vec4<f32>,
};

@group(0) @binding(0) var<uniform> globals: Globals;
@group(1) @binding(0) var<uniform> object: Object;
@group(2) @binding(0) var<uniform> material: MaterialUniform;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return globals.viewProj * object.model * vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return material.baseColor;
}
`

// shadowShaderSource renders shadow casters into the light's depth map.
const shadowShaderSource = `
struct ShadowGlobals {
    viewProj: mat4x4<f32>,
    lightViewProj: mat4x4<f32>,
};

struct Object {
    model: mat4x4<f32>,
    flags: vec4<f32>,
};

@group(0) @binding(0) var<uniform> globals: ShadowGlobals;
@group(1) @binding(0) var<uniform> object: Object;

@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return globals.lightViewProj * object.model * vec4<f32>(position, 1.0);
}
`

// overlayShaderSource draws UI triangles in window pixels, tinted by vertex color and the font atlas.
// Vertex colors arrive in sRGB and are linearised for the sRGB surface.
const overlayShaderSource = `
struct Overlay {
    transform: vec4<f32>,
    params: vec4<f32>,
};

@group(0) @binding(0) var<uniform> overlay: Overlay;
@group(0) @binding(1) var atlas: texture_2d<f32>;
@group(0) @binding(2) var atlasSampler: sampler;

struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
    @location(1) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = vec4<f32>(in.position * overlay.transform.xy + overlay.transform.zw, 0.0, 1.0);
    out.uv = in.uv;
    out.color = vec4<f32>(pow(in.color.rgb, vec3<f32>(2.2)), in.color.a);
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color * textureSample(atlas, atlasSampler, in.uv);
}
`
